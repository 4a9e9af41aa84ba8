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

// Package types contains data types related to the block chain.
package types

import (
	"fmt"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Header represents a block header in the chain.
//
// A header is immutable once it is part of a Block. Use HeaderBuilder to
// derive patched copies.
type Header struct {
	ParentHash  common.Hash    `json:"parentHash"`
	Coinbase    common.Address `json:"miner"`
	Root        common.Hash    `json:"stateRoot"`
	TxHash      common.Hash    `json:"transactionsRoot"`
	ReceiptHash common.Hash    `json:"receiptsRoot"`
	Difficulty  *big.Int       `json:"difficulty"`
	Number      uint64         `json:"number"`
	Time        uint64         `json:"timestamp"`
	Extra       []byte         `json:"extraData"`
	SealType    SealType       `json:"sealType"`
	Seal        Seal           `json:"-"`
}

// headerRLP is the consensus encoding of a header. The seal is carried as a
// raw payload whose layout depends on SealType.
type headerRLP struct {
	ParentHash  common.Hash
	Coinbase    common.Address
	Root        common.Hash
	TxHash      common.Hash
	ReceiptHash common.Hash
	Difficulty  *big.Int
	Number      uint64
	Time        uint64
	Extra       []byte
	SealType    SealType
	Seal        rlp.RawValue
}

// sealHeaderRLP is headerRLP minus the seal.
type sealHeaderRLP struct {
	ParentHash  common.Hash
	Coinbase    common.Address
	Root        common.Hash
	TxHash      common.Hash
	ReceiptHash common.Hash
	Difficulty  *big.Int
	Number      uint64
	Time        uint64
	Extra       []byte
	SealType    SealType
}

// EncodeRLP implements rlp.Encoder.
func (h *Header) EncodeRLP(w io.Writer) error {
	seal, err := encodeSeal(h.Seal)
	if err != nil {
		return err
	}
	return rlp.Encode(w, &headerRLP{
		ParentHash:  h.ParentHash,
		Coinbase:    h.Coinbase,
		Root:        h.Root,
		TxHash:      h.TxHash,
		ReceiptHash: h.ReceiptHash,
		Difficulty:  h.difficulty(),
		Number:      h.Number,
		Time:        h.Time,
		Extra:       h.Extra,
		SealType:    h.SealType,
		Seal:        seal,
	})
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var dec headerRLP
	if err := s.Decode(&dec); err != nil {
		return err
	}
	seal, err := decodeSeal(dec.SealType, dec.Seal)
	if err != nil {
		return err
	}
	*h = Header{
		ParentHash:  dec.ParentHash,
		Coinbase:    dec.Coinbase,
		Root:        dec.Root,
		TxHash:      dec.TxHash,
		ReceiptHash: dec.ReceiptHash,
		Difficulty:  dec.Difficulty,
		Number:      dec.Number,
		Time:        dec.Time,
		Extra:       dec.Extra,
		SealType:    dec.SealType,
		Seal:        seal,
	}
	return nil
}

func (h *Header) difficulty() *big.Int {
	if h.Difficulty == nil {
		return new(big.Int)
	}
	return h.Difficulty
}

// Hash returns the block hash of the header, which is simply the keccak256
// hash of its RLP encoding. The hash does not depend on fork choice: total
// difficulty lives in the level index, never in the header.
func (h *Header) Hash() common.Hash {
	return rlpHash(h)
}

// SealHash returns the hash of the header without its seal. Both proof types
// commit to this value.
func (h *Header) SealHash() common.Hash {
	return rlpHash(&sealHeaderRLP{
		ParentHash:  h.ParentHash,
		Coinbase:    h.Coinbase,
		Root:        h.Root,
		TxHash:      h.TxHash,
		ReceiptHash: h.ReceiptHash,
		Difficulty:  h.difficulty(),
		Number:      h.Number,
		Time:        h.Time,
		Extra:       h.Extra,
		SealType:    h.SealType,
	})
}

// SanityCheck checks a few basic things -- these checks are way beyond what
// any 'sane' production values should hold, and can mainly be used to prevent
// that the unbounded fields are stuffed with junk data to add processing
// overhead.
func (h *Header) SanityCheck() error {
	if h.Difficulty != nil {
		if diffLen := h.Difficulty.BitLen(); diffLen > 256 {
			return fmt.Errorf("too large block difficulty: bitlen %d", diffLen)
		}
		if h.Difficulty.Sign() < 0 {
			return fmt.Errorf("negative block difficulty")
		}
	}
	if eLen := len(h.Extra); eLen > 100*1024 {
		return fmt.Errorf("too large block extradata: size %d", eLen)
	}
	if h.Seal != nil && h.Seal.Type() != h.SealType {
		return fmt.Errorf("%w: header %v, seal %v", errSealTypeMismatch, h.SealType, h.Seal.Type())
	}
	return nil
}

// MiningSeal returns the proof-of-work seal, or nil for other seal types.
func (h *Header) MiningSeal() *MiningSeal {
	s, _ := h.Seal.(*MiningSeal)
	return s
}

// StakingSeal returns the staking seal, or nil for other seal types.
func (h *Header) StakingSeal() *StakingSeal {
	s, _ := h.Seal.(*StakingSeal)
	return s
}

// CopyHeader creates a deep copy of a block header.
func CopyHeader(h *Header) *Header {
	cpy := *h
	if cpy.Difficulty = new(big.Int); h.Difficulty != nil {
		cpy.Difficulty.Set(h.Difficulty)
	}
	if len(h.Extra) > 0 {
		cpy.Extra = make([]byte, len(h.Extra))
		copy(cpy.Extra, h.Extra)
	}
	if h.Seal != nil {
		cpy.Seal = h.Seal.copy()
	}
	return &cpy
}

// Block represents an entire block in the chain.
type Block struct {
	header       *Header
	transactions Transactions

	// caches
	hash atomic.Pointer[common.Hash]
}

// extblock is the "external" block encoding used for the block store.
type extblock struct {
	Header *Header
	Txs    []*Transaction
}

// NewBlock creates a new block. The input data is copied, changes to header
// and to the field values will not affect the block.
//
// The value of TxHash in header is ignored and set to the hash of the given
// transactions.
func NewBlock(header *Header, txs []*Transaction) *Block {
	b := &Block{header: CopyHeader(header)}
	if len(txs) == 0 {
		b.header.TxHash = EmptyTxsHash
	} else {
		b.header.TxHash = DeriveSha(Transactions(txs), NewListHasher())
		b.transactions = make(Transactions, len(txs))
		copy(b.transactions, txs)
	}
	return b
}

// NewBlockWithHeader creates a block with the given header data. The
// header data is copied, changes to header and to the field values
// will not affect the block.
func NewBlockWithHeader(header *Header) *Block {
	return &Block{header: CopyHeader(header)}
}

// WithSeal returns a new block with the data from b but the header replaced
// with the sealed one.
func (b *Block) WithSeal(header *Header) *Block {
	return &Block{
		header:       CopyHeader(header),
		transactions: b.transactions,
	}
}

// DecodeRLP decodes a block from RLP.
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	var eb extblock
	if err := s.Decode(&eb); err != nil {
		return err
	}
	if eb.Header == nil {
		return fmt.Errorf("block without header")
	}
	b.header, b.transactions = eb.Header, eb.Txs
	return nil
}

// EncodeRLP serializes a block as RLP.
func (b *Block) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &extblock{
		Header: b.header,
		Txs:    b.transactions,
	})
}

// Transactions returns the block's transaction list.
func (b *Block) Transactions() Transactions { return b.transactions }

// Transaction returns the transaction with the given hash, or nil.
func (b *Block) Transaction(hash common.Hash) *Transaction {
	for _, transaction := range b.transactions {
		if transaction.Hash() == hash {
			return transaction
		}
	}
	return nil
}

// Header returns the block header (as a copy).
func (b *Block) Header() *Header { return CopyHeader(b.header) }

func (b *Block) Number() *big.Int         { return new(big.Int).SetUint64(b.header.Number) }
func (b *Block) NumberU64() uint64        { return b.header.Number }
func (b *Block) Difficulty() *big.Int     { return new(big.Int).Set(b.header.difficulty()) }
func (b *Block) Time() uint64             { return b.header.Time }
func (b *Block) Coinbase() common.Address { return b.header.Coinbase }
func (b *Block) Root() common.Hash        { return b.header.Root }
func (b *Block) ParentHash() common.Hash  { return b.header.ParentHash }
func (b *Block) TxHash() common.Hash      { return b.header.TxHash }
func (b *Block) ReceiptHash() common.Hash { return b.header.ReceiptHash }
func (b *Block) Extra() []byte            { return common.CopyBytes(b.header.Extra) }
func (b *Block) SealType() SealType       { return b.header.SealType }

// Seal returns a copy of the block's seal.
func (b *Block) Seal() Seal {
	if b.header.Seal == nil {
		return nil
	}
	return b.header.Seal.copy()
}

// SealHash returns the hash the block's seal commits to.
func (b *Block) SealHash() common.Hash { return b.header.SealHash() }

// Hash returns the keccak256 hash of b's header.
// The hash is computed on the first call and cached thereafter.
func (b *Block) Hash() common.Hash {
	if hash := b.hash.Load(); hash != nil {
		return *hash
	}
	h := b.header.Hash()
	b.hash.Store(&h)
	return h
}

func (b *Block) String() string {
	return fmt.Sprintf("Block(#%d %x %v txs=%d)", b.header.Number, b.Hash().Bytes()[:4], b.header.SealType, len(b.transactions))
}

// Blocks is a list of blocks.
type Blocks []*Block
