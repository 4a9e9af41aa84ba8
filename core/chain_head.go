// Copyright 2018 The go-ethereum Authors
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
package core

import (
	"fmt"
	"math/big"

	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/common"
)

// ChainHead is an immutable snapshot of the published head. It is replaced
// wholesale, so readers always see a block together with its own total
// difficulty.
type ChainHead struct {
	Block           *types.Block
	TotalDifficulty *big.Int
}

// Hash returns the hash of the head block.
func (h *ChainHead) Hash() common.Hash { return h.Block.Hash() }

// Number returns the number of the head block.
func (h *ChainHead) Number() uint64 { return h.Block.NumberU64() }

func (h *ChainHead) String() string {
	return fmt.Sprintf("{number: %d, hash: %x, td: %v}", h.Number(), h.Hash(), h.TotalDifficulty)
}
