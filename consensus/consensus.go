// Copyright 2017 The go-ethereum Authors
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
// Package consensus implements different Ethereum consensus engines.
package consensus

import (
	"math/big"

	"github.com/aionnetwork/unitychain/core/types"
	"github.com/aionnetwork/unitychain/params"
	"github.com/ethereum/go-ethereum/common"
)

// ChainHeaderReader defines a small collection of methods needed to access the local
// blockchain during header verification.
type ChainHeaderReader interface {
	// Config retrieves the blockchain's chain configuration.
	Config() *params.ChainConfig

	// GetHeader retrieves a block header from the database by hash and number.
	GetHeader(hash common.Hash, number uint64) *types.Header

	// GetHeaderByHash retrieves a block header from the database by its hash.
	GetHeaderByHash(hash common.Hash) *types.Header
}

// Engine is an algorithm agnostic consensus engine.
type Engine interface {
	// VerifyHeader checks whether a header conforms to the consensus rules of a
	// given engine. The parent of the header must be retrievable from chain.
	VerifyHeader(chain ChainHeaderReader, header *types.Header) error

	// Prepare initializes the consensus fields of a block header according to the
	// rules of a particular engine: the seal type the header must carry and its
	// difficulty. The changes are executed inline.
	Prepare(chain ChainHeaderReader, header *types.Header) error

	// CalcDifficulty is the difficulty adjustment algorithm. It returns the difficulty
	// that a new block of the given seal type should have.
	CalcDifficulty(chain ChainHeaderReader, time uint64, parent *types.Header, sealType types.SealType) *big.Int
}
