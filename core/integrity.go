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
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/aionnetwork/unitychain/core/types"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// IntegrityCheckResult is the outcome of a level index integrity check.
type IntegrityCheckResult int

const (
	IntegrityCorrect        IntegrityCheckResult = iota // every level present, every total difficulty consistent
	IntegrityFixed                                      // total difficulties were rewritten
	IntegrityMissingGenesis                             // the genesis record is gone, unrecoverable
	IntegrityMissingLevel                               // a stored height has no usable level
)

func (r IntegrityCheckResult) String() string {
	switch r {
	case IntegrityCorrect:
		return "CORRECT"
	case IntegrityFixed:
		return "FIXED"
	case IntegrityMissingGenesis:
		return "MISSING_GENESIS"
	case IntegrityMissingLevel:
		return "MISSING_LEVEL"
	default:
		return fmt.Sprintf("IntegrityCheckResult(%d)", int(r))
	}
}

// IntegrityCheck verifies the persisted levels 0..maxNumber against the block
// store. Total difficulties are recomputed by walking parent links and the
// levels that disagree are rewritten. Main-chain flags are never touched.
//
// The check reads the database directly and drops the level cache on return.
func (li *LevelIndex) IntegrityCheck(maxNumber uint64) (IntegrityCheckResult, error) {
	defer li.purge()

	if infos, ok := rawdb.ReadLevel(li.db, 0); !ok || len(infos) == 0 {
		log.Error("Level index has no genesis record")
		return IntegrityMissingGenesis, nil
	}
	var (
		batch  = li.db.NewBatch()
		fixed  int
		parent map[common.Hash]*big.Int
	)
	for number := uint64(0); number <= maxNumber; number++ {
		infos, ok := rawdb.ReadLevel(li.db, number)
		if !ok || len(infos) == 0 {
			log.Error("Level index is missing a level", "number", number, "stored", maxNumber)
			return IntegrityMissingLevel, nil
		}
		var (
			current = make(map[common.Hash]*big.Int, len(infos))
			changed bool
		)
		for i := range infos {
			block := rawdb.ReadBlock(li.db, infos[i].Hash)
			if block == nil {
				log.Error("Indexed block missing from block store", "number", number, "hash", infos[i].Hash)
				return IntegrityMissingLevel, nil
			}
			want := block.Difficulty()
			if number > 0 {
				ptd, ok := parent[block.ParentHash()]
				if !ok {
					log.Error("Indexed block has no indexed parent", "number", number, "hash", infos[i].Hash)
					return IntegrityMissingLevel, nil
				}
				want.Add(want, ptd)
			}
			if have := infos[i].TotalDifficulty; have == nil || have.Cmp(want) != 0 {
				log.Warn("Correcting total difficulty", "number", number, "hash", infos[i].Hash, "have", have, "want", want)
				infos[i].TotalDifficulty = want
				changed = true
			}
			current[infos[i].Hash] = want
		}
		if changed {
			if err := rawdb.WriteLevel(batch, number, infos); err != nil {
				return IntegrityCorrect, err
			}
			fixed++
		}
		parent = current
	}
	if fixed == 0 {
		return IntegrityCorrect, nil
	}
	if err := batch.Write(); err != nil {
		return IntegrityCorrect, fmt.Errorf("failed to write corrected levels: %w", err)
	}
	log.Info("Level index corrected", "levels", fixed)
	return IntegrityFixed, nil
}

// rebuild reconstructs levels 0..maxNumber from the block store. Hashes are
// collected by following parent links downward from every surviving record
// and from the recorded head, total difficulties are replayed upward from
// genesis and the main chain is re-derived from the heaviest tip, preferring
// the recorded head on ties. It returns the new head.
func (li *LevelIndex) rebuild(maxNumber uint64, head common.Hash) (*types.Block, error) {
	defer li.purge()

	known := make([]mapset.Set[common.Hash], maxNumber+1)
	for i := range known {
		known[i] = mapset.NewThreadUnsafeSet[common.Hash]()
	}
	if block := rawdb.ReadBlock(li.db, head); block != nil && block.NumberU64() <= maxNumber {
		known[block.NumberU64()].Add(head)
	}
	blocks := make(map[common.Hash]*types.Block)
	for number := maxNumber; ; number-- {
		if infos, ok := rawdb.ReadLevel(li.db, number); ok {
			for _, info := range infos {
				known[number].Add(info.Hash)
			}
		}
		for _, hash := range known[number].ToSlice() {
			block := rawdb.ReadBlock(li.db, hash)
			if block == nil || block.NumberU64() != number {
				log.Warn("Dropping index record without block", "number", number, "hash", hash)
				known[number].Remove(hash)
				continue
			}
			blocks[hash] = block
			if number > 0 {
				known[number-1].Add(block.ParentHash())
			}
		}
		if number == 0 {
			break
		}
	}
	if known[0].Cardinality() == 0 {
		return nil, ErrMissingGenesis
	}
	var (
		tds    = make(map[common.Hash]*big.Int, len(blocks))
		levels = make([][]types.BlockInfo, maxNumber+1)
		best   *types.Block
	)
	for number := uint64(0); number <= maxNumber; number++ {
		hashes := known[number].ToSlice()
		sort.Slice(hashes, func(i, j int) bool { return bytes.Compare(hashes[i][:], hashes[j][:]) < 0 })

		for _, hash := range hashes {
			block := blocks[hash]
			td := block.Difficulty()
			if number > 0 {
				ptd, ok := tds[block.ParentHash()]
				if !ok {
					log.Warn("Dropping block with unknown parent", "number", number, "hash", hash)
					continue
				}
				td.Add(td, ptd)
			}
			tds[hash] = td
			levels[number] = append(levels[number], types.BlockInfo{Hash: hash, TotalDifficulty: td})

			if best == nil {
				best = block
				continue
			}
			switch tds[best.Hash()].Cmp(td) {
			case -1:
				best = block
			case 0:
				if hash == head {
					best = block
				}
			}
		}
	}
	// Flag the path from the heaviest tip back to genesis.
	for block := best; block != nil; {
		number := block.NumberU64()
		for i := range levels[number] {
			if levels[number][i].Hash == block.Hash() {
				levels[number][i].MainChain = true
			}
		}
		if number == 0 {
			break
		}
		block = blocks[block.ParentHash()]
	}
	var (
		batch = li.db.NewBatch()
		top   uint64
	)
	for number, infos := range levels {
		if infos != nil {
			top = uint64(number)
		}
	}
	for number, infos := range levels {
		if infos == nil {
			if err := rawdb.DeleteLevel(batch, uint64(number)); err != nil {
				return nil, err
			}
			continue
		}
		if err := rawdb.WriteLevel(batch, uint64(number), infos); err != nil {
			return nil, err
		}
	}
	if err := rawdb.WriteHeadBlockHash(batch, best.Hash()); err != nil {
		return nil, err
	}
	if err := rawdb.WriteBlockStoreHeight(batch, top); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, fmt.Errorf("failed to write rebuilt level index: %w", err)
	}
	log.Info("Rebuilt level index", "levels", maxNumber+1, "blocks", len(tds), "head", best.NumberU64(), "hash", best.Hash(), "td", tds[best.Hash()])
	return best, nil
}
