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
	"math"
	"math/big"
	"testing"

	"github.com/aionnetwork/unitychain/consensus/unity"
	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
)

// noUnity schedules the unity fork out of reach, every block is mined.
const noUnity = math.MaxUint64

var (
	testKey, _  = crypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	testAddress = crypto.PubkeyToAddress(testKey.PublicKey)
)

// testEnv holds a chain under test and a separate database the test blocks
// are generated into.
type testEnv struct {
	genesis *Genesis
	engine  *unity.Unity
	genDb   ethdb.KeyValueStore
	db      ethdb.KeyValueStore
	chain   *BlockChain
}

func newTestEnv(t *testing.T, unityFork uint64) *testEnv {
	return newTestEnvWithConfig(t, unityFork, nil)
}

func newTestEnvWithConfig(t *testing.T, unityFork uint64, cacheConfig *CacheConfig) *testEnv {
	t.Helper()

	env := &testEnv{
		genesis: DeveloperGenesisBlock(unityFork, testAddress),
		engine:  unity.NewFaker(),
		genDb:   rawdb.NewMemoryDatabase(),
		db:      rawdb.NewMemoryDatabase(),
	}
	env.genesis.MustCommit(env.genDb)
	env.genesis.MustCommit(env.db)

	chain, err := NewBlockChain(env.db, cacheConfig, env.genesis.Config, env.engine)
	if err != nil {
		t.Fatalf("failed to create chain: %v", err)
	}
	t.Cleanup(chain.Stop)
	env.chain = chain
	return env
}

// generate creates n blocks on top of parent. Branches built with different
// seeds differ in their coinbase and therefore in their hashes.
func (env *testEnv) generate(parent *types.Block, n int, seed byte) []*types.Block {
	blocks, _ := GenerateChain(env.genesis.Config, parent, env.engine, env.genDb, n, func(i int, b *BlockGen) {
		b.SetCoinbase(common.Address{seed})
	})
	return blocks
}

// reopen creates a new chain over the same database, running recovery again.
func (env *testEnv) reopen(t *testing.T) (*BlockChain, error) {
	t.Helper()
	env.chain.Stop()
	chain, err := NewBlockChain(env.db, nil, env.genesis.Config, env.engine)
	if err == nil {
		t.Cleanup(chain.Stop)
		env.chain = chain
	}
	return chain, err
}

// insert imports blocks one by one and fails the test unless each one was
// stored.
func insert(t *testing.T, chain *BlockChain, blocks []*types.Block) []ImportResult {
	t.Helper()

	results := make([]ImportResult, len(blocks))
	for i, block := range blocks {
		res, err := chain.TryToConnect(block)
		if err != nil {
			t.Fatalf("block %d: import failed: %v", block.NumberU64(), err)
		}
		if !res.IsSuccessful() {
			t.Fatalf("block %d: import result %v", block.NumberU64(), res)
		}
		results[i] = res
	}
	return results
}

// checkChainInvariants verifies that every height up to the head has exactly
// one main chain record forming a parent-linked path to genesis, that no
// main chain record exists above the head and that total difficulties add up.
func checkChainInvariants(t *testing.T, chain *BlockChain) {
	t.Helper()

	head := chain.CurrentHead()
	if td := chain.GetTd(head.Hash(), head.Number()); td == nil || td.Cmp(head.TotalDifficulty) != 0 {
		t.Fatalf("head td mismatch: index %v, published %v", td, head.TotalDifficulty)
	}
	expect := head.Hash()
	for number := head.Number(); ; number-- {
		var mains []common.Hash
		for _, info := range chain.index.Get(number) {
			if info.MainChain {
				mains = append(mains, info.Hash)
			}
		}
		if len(mains) != 1 {
			t.Fatalf("height %d: have %d main chain records, want 1", number, len(mains))
		}
		if mains[0] != expect {
			t.Fatalf("height %d: main chain hash mismatch: have %x, want %x", number, mains[0], expect)
		}
		if number == 0 {
			break
		}
		expect = chain.GetBlock(expect, number).ParentHash()
	}
	height, _ := rawdb.ReadBlockStoreHeight(chain.db)
	for number := head.Number() + 1; number <= height; number++ {
		for _, info := range chain.index.Get(number) {
			if info.MainChain {
				t.Fatalf("height %d above head %d has main chain record %x", number, head.Number(), info.Hash)
			}
		}
	}
	for number := uint64(1); number <= height; number++ {
		for _, info := range chain.index.Get(number) {
			block := chain.GetBlock(info.Hash, number)
			if block == nil {
				t.Fatalf("height %d: indexed block %x missing", number, info.Hash)
			}
			ptd := chain.GetTd(block.ParentHash(), number-1)
			if ptd == nil {
				t.Fatalf("height %d: parent of %x not indexed", number, info.Hash)
			}
			if want := new(big.Int).Add(ptd, block.Difficulty()); info.TotalDifficulty.Cmp(want) != 0 {
				t.Fatalf("height %d: td mismatch for %x: have %v, want %v", number, info.Hash, info.TotalDifficulty, want)
			}
		}
	}
}

// dumpDatabase returns a copy of every key-value pair in db.
func dumpDatabase(t *testing.T, db ethdb.KeyValueStore) map[string][]byte {
	t.Helper()

	it := db.NewIterator(nil, nil)
	defer it.Release()

	dump := make(map[string][]byte)
	for it.Next() {
		dump[string(it.Key())] = common.CopyBytes(it.Value())
	}
	if err := it.Error(); err != nil {
		t.Fatalf("failed to iterate database: %v", err)
	}
	return dump
}

func sameDatabase(a, b map[string][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if !bytes.Equal(v, b[k]) {
			return false
		}
	}
	return true
}

