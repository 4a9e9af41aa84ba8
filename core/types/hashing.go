// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"bytes"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	// EmptyTxsHash is the known hash of the empty transaction set.
	EmptyTxsHash = DeriveSha(Transactions(nil), NewListHasher())

	// EmptyReceiptsHash is the known hash of the empty receipt set.
	EmptyReceiptsHash = DeriveSha(Receipts(nil), NewListHasher())
)

// encodeBufferPool holds temporary encoder buffers for DeriveSha and TX encoding.
var encodeBufferPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// hasherPool holds LegacyKeccak256 hashers for rlpHash.
var hasherPool = sync.Pool{
	New: func() interface{} { return crypto.NewKeccakState() },
}

// rlpHash encodes x and hashes the encoded bytes.
func rlpHash(x interface{}) (h common.Hash) {
	sha := hasherPool.Get().(crypto.KeccakState)
	defer hasherPool.Put(sha)
	sha.Reset()
	rlp.Encode(sha, x)
	sha.Read(h[:])
	return h
}

// DerivableList is the input to DeriveSha.
// It is implemented by the 'Transactions' and 'Receipts' types.
// This is internal, do not use these methods.
type DerivableList interface {
	Len() int
	EncodeIndex(int, *bytes.Buffer)
}

// ListHasher is the tool used to calculate the hash of derivable list.
type ListHasher interface {
	Reset()
	Update([]byte, []byte)
	Hash() common.Hash
}

// keccakListHasher commits to every (index, keccak(item)) pair in order.
// Merkle proofs over the list are not needed by the chain core, so no trie
// is built.
type keccakListHasher struct {
	sha crypto.KeccakState
}

// NewListHasher returns the hasher used for block list commitments.
func NewListHasher() ListHasher {
	return &keccakListHasher{sha: crypto.NewKeccakState()}
}

func (h *keccakListHasher) Reset() { h.sha.Reset() }

func (h *keccakListHasher) Update(key, value []byte) {
	h.sha.Write(key)
	h.sha.Write(crypto.Keccak256(value))
}

func (h *keccakListHasher) Hash() (hash common.Hash) {
	h.sha.Sum(hash[:0])
	return hash
}

// DeriveSha creates the commitment of the items in list.
func DeriveSha(list DerivableList, hasher ListHasher) common.Hash {
	hasher.Reset()

	valueBuf := encodeBufferPool.Get().(*bytes.Buffer)
	defer encodeBufferPool.Put(valueBuf)

	var indexBuf []byte
	for i := 0; i < list.Len(); i++ {
		indexBuf = rlp.AppendUint64(indexBuf[:0], uint64(i))
		valueBuf.Reset()
		list.EncodeIndex(i, valueBuf)
		hasher.Update(indexBuf, valueBuf.Bytes())
	}
	return hasher.Hash()
}
