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
	"sync"

	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	lru "github.com/hashicorp/golang-lru"
)

const levelCacheLimit = 1024

// LevelIndex keeps, per block number, the records of every stored block at
// that height: its hash, its total difficulty and whether it is on the main
// chain. Levels are cached as immutable slices; mutations are staged in an
// indexBatch and reach the cache only after they were written to disk.
//
// Readers fill the cache from disk under the read side of mu, publishing
// writes to the cache takes the write side. A level read from disk before a
// write can therefore never be cached after that write was published.
type LevelIndex struct {
	db    ethdb.KeyValueStore
	cache *lru.Cache   // number -> []types.BlockInfo
	mu    sync.RWMutex // orders cache fills against commit and purge
}

// NewLevelIndex creates a level index over db.
func NewLevelIndex(db ethdb.KeyValueStore, cacheLimit int) *LevelIndex {
	if cacheLimit <= 0 {
		cacheLimit = levelCacheLimit
	}
	cache, _ := lru.New(cacheLimit)
	return &LevelIndex{db: db, cache: cache}
}

// level returns the shared, read-only records of one height.
func (li *LevelIndex) level(number uint64) ([]types.BlockInfo, bool) {
	if cached, ok := li.cache.Get(number); ok {
		return cached.([]types.BlockInfo), true
	}
	li.mu.RLock()
	defer li.mu.RUnlock()

	infos, ok := rawdb.ReadLevel(li.db, number)
	if !ok {
		return nil, false
	}
	li.cache.ContainsOrAdd(number, infos)
	return infos, true
}

// Get returns a copy of the records stored at the given height, or nil if
// the height has no level.
func (li *LevelIndex) Get(number uint64) []types.BlockInfo {
	infos, ok := li.level(number)
	if !ok {
		return nil
	}
	return types.CopyBlockInfos(infos)
}

// HasLevel reports whether a level exists for the given height.
func (li *LevelIndex) HasLevel(number uint64) bool {
	_, ok := li.level(number)
	return ok
}

// Info returns a copy of the record of one block, or nil if it is not indexed.
func (li *LevelIndex) Info(hash common.Hash, number uint64) *types.BlockInfo {
	infos, _ := li.level(number)
	for i := range infos {
		if infos[i].Hash == hash {
			info := infos[i].Copy()
			return &info
		}
	}
	return nil
}

// Has reports whether a block is indexed.
func (li *LevelIndex) Has(hash common.Hash, number uint64) bool {
	infos, _ := li.level(number)
	for i := range infos {
		if infos[i].Hash == hash {
			return true
		}
	}
	return false
}

// TotalDifficulty returns the total difficulty of an indexed block.
func (li *LevelIndex) TotalDifficulty(hash common.Hash, number uint64) *big.Int {
	if info := li.Info(hash, number); info != nil {
		return info.TotalDifficulty
	}
	return nil
}

// MainChainHash returns the hash of the main-chain block at a height.
func (li *LevelIndex) MainChainHash(number uint64) (common.Hash, bool) {
	infos, _ := li.level(number)
	for i := range infos {
		if infos[i].MainChain {
			return infos[i].Hash, true
		}
	}
	return common.Hash{}, false
}

// Append adds a record at the given height and persists it.
func (li *LevelIndex) Append(number uint64, info types.BlockInfo) error {
	b := li.newBatch()
	b.append(number, info)
	return b.flush()
}

// SetMainChainFlag changes the main-chain flag of one record and persists it.
func (li *LevelIndex) SetMainChainFlag(number uint64, hash common.Hash, value bool) error {
	b := li.newBatch()
	if !b.setMainChain(number, hash, value) {
		return fmt.Errorf("%w: block %x not indexed at %d", ErrCorruptIndex, hash, number)
	}
	return b.flush()
}

// purge drops every cached level. Required after the levels were written
// without going through an indexBatch.
func (li *LevelIndex) purge() {
	li.mu.Lock()
	defer li.mu.Unlock()

	li.cache.Purge()
}

func (li *LevelIndex) newBatch() *indexBatch {
	return &indexBatch{index: li, dirty: make(map[uint64][]types.BlockInfo)}
}

// indexBatch stages level modifications. Nothing is visible to readers of the
// index until the batch was written and committed.
type indexBatch struct {
	index *LevelIndex
	dirty map[uint64][]types.BlockInfo
}

// level returns the staged copy of a height, creating it on first access.
func (b *indexBatch) level(number uint64) []types.BlockInfo {
	if infos, ok := b.dirty[number]; ok {
		return infos
	}
	infos := b.index.Get(number)
	b.dirty[number] = infos
	return infos
}

func (b *indexBatch) append(number uint64, info types.BlockInfo) {
	b.dirty[number] = append(b.level(number), info.Copy())
}

// setMainChain flips the main-chain flag of a record. It reports false if the
// record does not exist.
func (b *indexBatch) setMainChain(number uint64, hash common.Hash, value bool) bool {
	infos := b.level(number)
	for i := range infos {
		if infos[i].Hash == hash {
			infos[i].MainChain = value
			return true
		}
	}
	return false
}

// replace stages a complete level.
func (b *indexBatch) replace(number uint64, infos []types.BlockInfo) {
	b.dirty[number] = types.CopyBlockInfos(infos)
	if b.dirty[number] == nil {
		b.dirty[number] = []types.BlockInfo{}
	}
}

// write stages the modified levels into w.
func (b *indexBatch) write(w ethdb.KeyValueWriter) error {
	for number, infos := range b.dirty {
		if err := rawdb.WriteLevel(w, number, infos); err != nil {
			return err
		}
	}
	return nil
}

// commit publishes the modified levels to the cache. It must only be called
// after the data passed to write reached the disk.
func (b *indexBatch) commit() {
	b.index.mu.Lock()
	defer b.index.mu.Unlock()

	for number, infos := range b.dirty {
		if infos == nil {
			infos = []types.BlockInfo{}
		}
		b.index.cache.Add(number, infos)
	}
	b.dirty = make(map[uint64][]types.BlockInfo)
}

// flush writes the batch in its own database batch and commits it.
func (b *indexBatch) flush() error {
	batch := b.index.db.NewBatch()
	if err := b.write(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write level index: %w", err)
	}
	b.commit()
	return nil
}
