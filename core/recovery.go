// Copyright 2019 The go-ethereum Authors
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
	"errors"
	"fmt"
	"time"

	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/aionnetwork/unitychain/core/state"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

var errNoHead = errors.New("no usable head block")

// Recover runs the startup checks again: the level index is verified and
// rebuilt if needed, then the head is moved to the highest main chain block
// that has both its body and its world state.
func (bc *BlockChain) Recover() error {
	bc.chainmu.Lock()
	defer bc.chainmu.Unlock()
	return bc.recover()
}

func (bc *BlockChain) recover() error {
	height, ok := rawdb.ReadBlockStoreHeight(bc.db)
	if !ok {
		log.Warn("Block store height missing, assuming genesis only")
	}
	result, err := bc.index.IntegrityCheck(height)
	if err != nil {
		return err
	}
	switch result {
	case IntegrityMissingGenesis:
		return ErrMissingGenesis
	case IntegrityMissingLevel:
		log.Warn("Level index incomplete, rebuilding", "height", height)
		if _, err := bc.index.rebuild(height, rawdb.ReadHeadBlockHash(bc.db)); err != nil {
			return err
		}
	}
	head, err := bc.loadHead(height)
	if err != nil {
		return err
	}
	start, err := bc.findStartingBlock(head)
	if err != nil {
		return err
	}
	if start.Hash() != head.Hash() || start.Hash() != rawdb.ReadHeadBlockHash(bc.db) {
		log.Warn("Head block unusable, rewinding", "head", head.NumberU64(), "hash", head.Hash(), "start", start.NumberU64())
		if err := bc.rewind(start); err != nil {
			return err
		}
	} else {
		td := bc.index.TotalDifficulty(head.Hash(), head.NumberU64())
		bc.currentHead.Store(&ChainHead{Block: head, TotalDifficulty: td})
		headBlockGauge.Update(int64(head.NumberU64()))
	}
	bc.startingBlock.Store(start)

	current := bc.CurrentHead()
	log.Info("Loaded most recent local block", "number", current.Number(), "hash", current.Hash(), "td", current.TotalDifficulty,
		"age", common.PrettyAge(time.Unix(int64(start.Time()), 0)))
	return nil
}

// loadHead returns the recorded head block, or the highest main chain block
// if the record is unusable.
func (bc *BlockChain) loadHead(height uint64) (*types.Block, error) {
	if hash := rawdb.ReadHeadBlockHash(bc.db); hash != (common.Hash{}) {
		if block := rawdb.ReadBlock(bc.db, hash); block != nil {
			if info := bc.index.Info(hash, block.NumberU64()); info != nil && info.MainChain {
				return block, nil
			}
		}
		log.Warn("Head block not on main chain, searching index", "hash", hash)
	}
	for number := height; ; number-- {
		if hash, ok := bc.index.MainChainHash(number); ok {
			if block := rawdb.ReadBlock(bc.db, hash); block != nil {
				return block, nil
			}
		}
		if number == 0 {
			return nil, errNoHead
		}
	}
}

// findStartingBlock walks the main chain down from head to the first block
// whose body is stored and whose world state is readable.
func (bc *BlockChain) findStartingBlock(head *types.Block) (*types.Block, error) {
	for number := head.NumberU64(); ; number-- {
		hash := head.Hash()
		if number != head.NumberU64() {
			var ok bool
			if hash, ok = bc.index.MainChainHash(number); !ok {
				log.Error("Main chain has no block at height", "number", number)
				if number == 0 {
					return nil, ErrNoValidState
				}
				continue
			}
		}
		block := rawdb.ReadBlock(bc.db, hash)
		if block != nil && bc.HasState(block.Root()) {
			return block, nil
		}
		log.Warn("Block unusable as starting point", "number", number, "hash", hash, "body", block != nil)
		if number == 0 {
			return nil, ErrNoValidState
		}
	}
}

// ReconcileState brings the head back to the heaviest indexed block above it
// after recovery rewound it. The world states of the blocks in between are
// recreated by executing them again. Execution stops at the first block that
// fails; the head then moves to the last block that succeeded, if that one is
// heavier than the current head.
func (bc *BlockChain) ReconcileState() error {
	bc.chainmu.Lock()
	defer bc.chainmu.Unlock()

	head := bc.CurrentHead()
	height, _ := rawdb.ReadBlockStoreHeight(bc.db)

	var (
		tip       *types.BlockInfo
		tipNumber uint64
	)
	for number := head.Number() + 1; number <= height; number++ {
		for _, info := range bc.index.Get(number) {
			if tip == nil || info.TotalDifficulty.Cmp(tip.TotalDifficulty) > 0 {
				info := info
				tip, tipNumber = &info, number
			}
		}
	}
	if tip == nil || tip.TotalDifficulty.Cmp(head.TotalDifficulty) <= 0 {
		log.Debug("World state already reconciled", "head", head.Number())
		return nil
	}
	var pending []*types.Block
	block := bc.GetBlock(tip.Hash, tipNumber)
	for block != nil && !bc.HasState(block.Root()) {
		pending = append(pending, block)
		if block.NumberU64() == 0 {
			return ErrNoValidState
		}
		block = bc.GetBlock(block.ParentHash(), block.NumberU64()-1)
	}
	if block == nil {
		return fmt.Errorf("%w: ancestry of %x incomplete", ErrCorruptIndex, tip.Hash)
	}
	var (
		last    = block
		execErr error
	)
	for i := len(pending) - 1; i >= 0; i-- {
		if execErr = bc.reexecute(pending[i]); execErr != nil {
			log.Error("Failed to re-execute block", "number", pending[i].NumberU64(), "hash", pending[i].Hash(), "err", execErr)
			break
		}
		last = pending[i]
	}
	td := bc.index.TotalDifficulty(last.Hash(), last.NumberU64())
	if td == nil || td.Cmp(head.TotalDifficulty) <= 0 {
		return execErr
	}
	ib := bc.index.newBatch()
	ancestor, err := bc.reorg(ib, head.Block.Header(), last.Header())
	if err != nil {
		return err
	}
	batch := bc.db.NewBatch()
	if err := ib.write(batch); err != nil {
		return err
	}
	if err := rawdb.WriteHeadBlockHash(batch, last.Hash()); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write reconciled head: %w", err)
	}
	ib.commit()

	newHead := &ChainHead{Block: last, TotalDifficulty: td}
	bc.currentHead.Store(newHead)
	bc.selector.switched(ancestor)
	headBlockGauge.Update(int64(last.NumberU64()))

	log.Info("Reconciled world state", "from", head.Number(), "to", last.NumberU64(), "executed", len(pending), "td", td)
	bc.postChainEvents([]interface{}{ChainHeadEvent{Block: last, TotalDifficulty: td, Context: bc.selector.Latest()}})
	return execErr
}

// reexecute runs a stored block on top of its parent's state and persists the
// resulting world state.
func (bc *BlockChain) reexecute(block *types.Block) error {
	parent := bc.GetBlock(block.ParentHash(), block.NumberU64()-1)
	if parent == nil {
		return fmt.Errorf("%w: parent of %x", ErrUnknownAncestor, block.Hash())
	}
	statedb, err := state.New(parent.Root(), bc.stateCache)
	if err != nil {
		return err
	}
	res, err := bc.processor.Process(block, statedb, BlockCachingContext{Kind: DeepSideChainContext})
	if err != nil {
		return err
	}
	if res.Root != block.Root() {
		return fmt.Errorf("%w: have %x, want %x", ErrStateRootMismatch, res.Root, block.Root())
	}
	batch := bc.db.NewBatch()
	if _, err := statedb.Commit(batch); err != nil {
		return err
	}
	return batch.Write()
}
