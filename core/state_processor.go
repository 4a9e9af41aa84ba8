// Copyright 2015 The go-ethereum Authors
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
	"github.com/aionnetwork/unitychain/params"
	"github.com/ethereum/go-ethereum/log"
)

// StateProcessor is a basic Processor, which takes care of transitioning
// state from one point to another. It applies value transfers and credits the
// block reward to the coinbase.
//
// StateProcessor implements Processor.
type StateProcessor struct {
	config *params.ChainConfig // Chain configuration options
}

// NewStateProcessor initialises a new StateProcessor.
func NewStateProcessor(config *params.ChainConfig) *StateProcessor {
	return &StateProcessor{config: config}
}

// Process processes the state changes of a block by applying its
// transactions to statedb and crediting the block reward.
//
// A transaction with a wrong nonce invalidates the whole block. A transfer the
// sender cannot afford is included with a failed receipt.
func (p *StateProcessor) Process(block *types.Block, statedb *state.StateDB, ctx BlockCachingContext) (*ExecutionResult, error) {
	log.Trace("Processing block", "number", block.NumberU64(), "hash", block.Hash(), "context", ctx)

	receipts := make(types.Receipts, 0, len(block.Transactions()))
	for i, tx := range block.Transactions() {
		receipt, err := ApplyTransaction(statedb, tx)
		if err != nil {
			return nil, fmt.Errorf("could not apply tx %d [%v]: %w", i, tx.Hash().Hex(), err)
		}
		receipts = append(receipts, receipt)
	}
	statedb.AddBalance(block.Coinbase(), params.BlockReward)

	return &ExecutionResult{
		Root:        statedb.IntermediateRoot(),
		ReceiptHash: types.DeriveSha(receipts, types.NewListHasher()),
		Receipts:    receipts,
	}, nil
}

// ApplyTransaction attempts to apply a transaction to the given state database.
func ApplyTransaction(statedb *state.StateDB, tx *types.Transaction) (*types.Receipt, error) {
	from := tx.From()
	if have, want := tx.Nonce(), statedb.GetNonce(from); have != want {
		return nil, fmt.Errorf("%w: address %v, tx: %d state: %d", ErrNonceMismatch, from.Hex(), have, want)
	}
	statedb.SetNonce(from, tx.Nonce()+1)

	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash()}
	snapshot := statedb.Snapshot()
	statedb.SubBalance(from, tx.Value())
	if statedb.GetBalance(from).Sign() < 0 {
		statedb.RevertToSnapshot(snapshot)
		receipt.Status = types.ReceiptStatusFailed
		return receipt, nil
	}
	statedb.AddBalance(tx.To(), tx.Value())
	return receipt, nil
}
