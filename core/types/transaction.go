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
	"io"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Transaction is a value transfer between two accounts. Signature checks and
// contract execution belong to the virtual machines and are not modelled.
type Transaction struct {
	inner txdata

	// caches
	hash atomic.Pointer[common.Hash]
}

type txdata struct {
	Nonce uint64
	From  common.Address
	To    common.Address
	Value *big.Int
	Data  []byte
}

// NewTransaction creates a value transfer.
func NewTransaction(nonce uint64, from, to common.Address, value *big.Int, data []byte) *Transaction {
	tx := &Transaction{inner: txdata{
		Nonce: nonce,
		From:  from,
		To:    to,
		Value: new(big.Int),
		Data:  common.CopyBytes(data),
	}}
	if value != nil {
		tx.inner.Value.Set(value)
	}
	return tx
}

// EncodeRLP implements rlp.Encoder.
func (tx *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &tx.inner)
}

// DecodeRLP implements rlp.Decoder.
func (tx *Transaction) DecodeRLP(s *rlp.Stream) error {
	var inner txdata
	if err := s.Decode(&inner); err != nil {
		return err
	}
	if inner.Value == nil {
		inner.Value = new(big.Int)
	}
	tx.inner = inner
	return nil
}

func (tx *Transaction) Nonce() uint64        { return tx.inner.Nonce }
func (tx *Transaction) From() common.Address { return tx.inner.From }
func (tx *Transaction) To() common.Address   { return tx.inner.To }
func (tx *Transaction) Value() *big.Int      { return new(big.Int).Set(tx.inner.Value) }
func (tx *Transaction) Data() []byte         { return common.CopyBytes(tx.inner.Data) }

// Hash returns the transaction hash.
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return *hash
	}
	h := rlpHash(&tx.inner)
	tx.hash.Store(&h)
	return h
}

// Transactions implements DerivableList for transactions.
type Transactions []*Transaction

// Len returns the length of s.
func (s Transactions) Len() int { return len(s) }

// EncodeIndex encodes the i'th transaction to w.
func (s Transactions) EncodeIndex(i int, w *bytes.Buffer) {
	rlp.Encode(w, s[i])
}
