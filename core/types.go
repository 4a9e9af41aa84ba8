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
package core

import (
	"fmt"

	"github.com/aionnetwork/unitychain/core/state"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/common"
)

// ImportResult is the terminal outcome of a block import.
type ImportResult int

const (
	ImportedBest       ImportResult = iota // stored and now the chain head
	ImportedNotBest                        // stored on a side chain
	ImportExist                            // already stored, nothing changed
	ImportNoParent                         // parent unknown, nothing stored
	ImportInvalidBlock                     // rejected, nothing stored
)

func (r ImportResult) String() string {
	switch r {
	case ImportedBest:
		return "IMPORTED_BEST"
	case ImportedNotBest:
		return "IMPORTED_NOT_BEST"
	case ImportExist:
		return "EXIST"
	case ImportNoParent:
		return "NO_PARENT"
	case ImportInvalidBlock:
		return "INVALID_BLOCK"
	default:
		return fmt.Sprintf("ImportResult(%d)", int(r))
	}
}

// IsSuccessful reports whether the block was stored by this import.
func (r ImportResult) IsSuccessful() bool {
	return r == ImportedBest || r == ImportedNotBest
}

// ExecutionResult is what a Processor reports for one block.
type ExecutionResult struct {
	Root        common.Hash
	ReceiptHash common.Hash
	Receipts    types.Receipts
}

// Processor is an interface for processing blocks using a given initial state.
//
// Process takes the block to be processed and the statedb upon which the
// initial state is based. The caching context tells the processor which of its
// cached execution artifacts are still valid. Process must not write to any
// store: the statedb is committed by the caller.
type Processor interface {
	Process(block *types.Block, statedb *state.StateDB, ctx BlockCachingContext) (*ExecutionResult, error)
}
