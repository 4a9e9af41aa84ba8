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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// HeaderBuilder produces new headers from a template. Every With* call patches
// the builder's private copy; the template header is never touched, so a
// sealed header can be used to manufacture structurally distinct siblings.
type HeaderBuilder struct {
	header *Header
}

// NewHeaderBuilder starts from an empty header.
func NewHeaderBuilder() *HeaderBuilder {
	return &HeaderBuilder{header: &Header{Difficulty: new(big.Int)}}
}

// HeaderBuilderFrom starts from a deep copy of template.
func HeaderBuilderFrom(template *Header) *HeaderBuilder {
	return &HeaderBuilder{header: CopyHeader(template)}
}

func (b *HeaderBuilder) WithParentHash(hash common.Hash) *HeaderBuilder {
	b.header.ParentHash = hash
	return b
}

func (b *HeaderBuilder) WithCoinbase(addr common.Address) *HeaderBuilder {
	b.header.Coinbase = addr
	return b
}

func (b *HeaderBuilder) WithRoot(root common.Hash) *HeaderBuilder {
	b.header.Root = root
	return b
}

func (b *HeaderBuilder) WithTxHash(hash common.Hash) *HeaderBuilder {
	b.header.TxHash = hash
	return b
}

func (b *HeaderBuilder) WithReceiptHash(hash common.Hash) *HeaderBuilder {
	b.header.ReceiptHash = hash
	return b
}

func (b *HeaderBuilder) WithDifficulty(diff *big.Int) *HeaderBuilder {
	b.header.Difficulty = new(big.Int).Set(diff)
	return b
}

func (b *HeaderBuilder) WithNumber(number uint64) *HeaderBuilder {
	b.header.Number = number
	return b
}

func (b *HeaderBuilder) WithTime(time uint64) *HeaderBuilder {
	b.header.Time = time
	return b
}

func (b *HeaderBuilder) WithExtra(extra []byte) *HeaderBuilder {
	b.header.Extra = common.CopyBytes(extra)
	return b
}

// WithSealType changes the seal type and drops any seal of the old type.
func (b *HeaderBuilder) WithSealType(t SealType) *HeaderBuilder {
	if b.header.Seal != nil && b.header.Seal.Type() != t {
		b.header.Seal = nil
	}
	b.header.SealType = t
	return b
}

// WithSeal attaches a proof and sets the seal type to match it.
func (b *HeaderBuilder) WithSeal(seal Seal) *HeaderBuilder {
	if seal == nil {
		b.header.Seal = nil
		return b
	}
	b.header.Seal = seal.copy()
	b.header.SealType = seal.Type()
	return b
}

// Build returns a copy of the header assembled so far. The builder stays
// usable for further patches.
func (b *HeaderBuilder) Build() *Header {
	return CopyHeader(b.header)
}
