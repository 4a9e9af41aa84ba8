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
	"math/big"
	"testing"

	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/stretchr/testify/require"
)

func TestIntegrityCheckCorrect(t *testing.T) {
	env := newTestEnv(t, noUnity)
	insert(t, env.chain, env.generate(env.chain.Genesis(), 4, 1))

	res, err := env.chain.IndexIntegrityCheck()
	require.NoError(t, err)
	require.Equal(t, IntegrityCorrect, res)
}

// Inflated total difficulties at one height are rewritten, flags are kept.
func TestIntegrityCheckFixesTotalDifficulty(t *testing.T) {
	env := newTestEnv(t, noUnity)
	main := env.generate(env.chain.Genesis(), 4, 1)
	insert(t, env.chain, main)
	insert(t, env.chain, env.generate(main[0], 1, 2))

	want, _ := rawdb.ReadLevel(env.db, 2)
	corrupt, _ := rawdb.ReadLevel(env.db, 2)
	if len(corrupt) != 2 {
		t.Fatalf("level 2 record count mismatch: have %d, want 2", len(corrupt))
	}
	for i := range corrupt {
		corrupt[i].TotalDifficulty.Add(corrupt[i].TotalDifficulty, big.NewInt(10))
	}
	require.NoError(t, rawdb.WriteLevel(env.db, 2, corrupt))

	res, err := env.chain.IndexIntegrityCheck()
	require.NoError(t, err)
	require.Equal(t, IntegrityFixed, res)

	have, _ := rawdb.ReadLevel(env.db, 2)
	for i := range want {
		if have[i].Hash != want[i].Hash || have[i].MainChain != want[i].MainChain || have[i].TotalDifficulty.Cmp(want[i].TotalDifficulty) != 0 {
			t.Fatalf("record %d not restored: have %v, want %v", i, have[i], want[i])
		}
	}
	res, err = env.chain.IndexIntegrityCheck()
	require.NoError(t, err)
	require.Equal(t, IntegrityCorrect, res)
	checkChainInvariants(t, env.chain)
}

func TestIntegrityCheckMissingGenesis(t *testing.T) {
	env := newTestEnv(t, noUnity)
	insert(t, env.chain, env.generate(env.chain.Genesis(), 3, 1))

	require.NoError(t, rawdb.DeleteLevel(env.db, 0))
	env.chain.index.purge()

	res, err := env.chain.IndexIntegrityCheck()
	require.NoError(t, err)
	require.Equal(t, IntegrityMissingGenesis, res)

	if _, err := env.reopen(t); !errors.Is(err, ErrMissingGenesis) {
		t.Fatalf("reopen error mismatch: have %v, want %v", err, ErrMissingGenesis)
	}
}

// A lost level is rebuilt from parent links at the next start.
func TestIntegrityCheckMissingLevel(t *testing.T) {
	env := newTestEnv(t, noUnity)
	main := env.generate(env.chain.Genesis(), 5, 1)
	side := env.generate(main[0], 2, 2)
	insert(t, env.chain, main)
	insert(t, env.chain, side)

	head := env.chain.CurrentHead()
	require.NoError(t, rawdb.DeleteLevel(env.db, 2))

	res, err := env.chain.IndexIntegrityCheck()
	require.NoError(t, err)
	require.Equal(t, IntegrityMissingLevel, res)

	chain, err := env.reopen(t)
	require.NoError(t, err)
	require.Equal(t, head.Hash(), chain.GetBestBlockHash())
	require.Zero(t, head.TotalDifficulty.Cmp(chain.GetTotalDifficulty()))
	for _, block := range append(main, side...) {
		if !chain.IsBlockStored(block.Hash(), block.NumberU64()) {
			t.Fatalf("block %d [%x] not indexed after rebuild", block.NumberU64(), block.Hash())
		}
	}
	checkChainInvariants(t, chain)

	res, err = chain.IndexIntegrityCheck()
	require.NoError(t, err)
	require.Equal(t, IntegrityCorrect, res)
}

// Rebuilding picks the heaviest branch even if its main chain flags were lost.
func TestRebuildSelectsHeaviestBranch(t *testing.T) {
	env := newTestEnv(t, noUnity)
	main := env.generate(env.chain.Genesis(), 2, 1)
	fork := env.generate(env.chain.Genesis(), 4, 2)
	insert(t, env.chain, main)
	insert(t, env.chain, fork)
	require.Equal(t, fork[3].Hash(), env.chain.GetBestBlockHash())

	// Lose every record above genesis except the fork tip, then point the
	// head at the stale branch.
	for number := uint64(1); number < 4; number++ {
		require.NoError(t, rawdb.DeleteLevel(env.db, number))
	}
	require.NoError(t, rawdb.WriteHeadBlockHash(env.db, main[1].Hash()))

	chain, err := env.reopen(t)
	require.NoError(t, err)
	require.Equal(t, fork[3].Hash(), chain.GetBestBlockHash())
	require.True(t, chain.IsBlockStored(main[1].Hash(), 2))
	checkChainInvariants(t, chain)
}

func TestIntegrityResultString(t *testing.T) {
	require.Equal(t, "CORRECT", IntegrityCorrect.String())
	require.Equal(t, "FIXED", IntegrityFixed.String())
	require.Equal(t, "MISSING_GENESIS", IntegrityMissingGenesis.String())
	require.Equal(t, "MISSING_LEVEL", IntegrityMissingLevel.String())
}
