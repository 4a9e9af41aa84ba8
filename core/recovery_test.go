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
	"testing"

	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/stretchr/testify/require"
)

// Losing the world states of the top blocks rewinds the head to the last
// block that still has one. Reconciling executes the lost blocks again.
func TestRecoverMissingState(t *testing.T) {
	env := newTestEnv(t, noUnity)
	blocks := env.generate(env.chain.Genesis(), 10, 1)
	insert(t, env.chain, blocks)
	td := env.chain.GetTotalDifficulty()

	for _, block := range blocks[5:] {
		require.NoError(t, rawdb.DeleteStateBlob(env.db, block.Root()))
	}
	chain, err := env.reopen(t)
	require.NoError(t, err)

	require.Equal(t, uint64(5), chain.StartingBlock().NumberU64())
	require.Equal(t, blocks[4].Hash(), chain.StartingBlock().Hash())
	require.Equal(t, blocks[4].Hash(), chain.GetBestBlockHash())
	require.Zero(t, chain.GetTotalDifficulty().Cmp(chain.GetTd(blocks[4].Hash(), 5)))
	for _, block := range blocks[5:] {
		require.True(t, chain.IsBlockStored(block.Hash(), block.NumberU64()), "block %d dropped", block.NumberU64())
	}
	checkChainInvariants(t, chain)

	require.NoError(t, chain.ReconcileState())
	require.Equal(t, blocks[9].Hash(), chain.GetBestBlockHash())
	require.Zero(t, td.Cmp(chain.GetTotalDifficulty()))
	for _, block := range blocks[5:] {
		require.True(t, chain.HasState(block.Root()), "state of block %d not restored", block.NumberU64())
	}
	require.Equal(t, uint64(5), chain.StartingBlock().NumberU64())
	checkChainInvariants(t, chain)

	// Nothing left to do.
	require.NoError(t, chain.ReconcileState())
	require.Equal(t, blocks[9].Hash(), chain.GetBestBlockHash())
}

// A head whose body vanished is replaced by its parent.
func TestRecoverMissingHeadBody(t *testing.T) {
	env := newTestEnv(t, noUnity)
	blocks := env.generate(env.chain.Genesis(), 4, 1)
	insert(t, env.chain, blocks)

	require.NoError(t, rawdb.DeleteBlock(env.db, blocks[3].Hash()))

	chain, err := env.reopen(t)
	require.NoError(t, err)
	require.Equal(t, blocks[2].Hash(), chain.GetBestBlockHash())
	checkChainInvariants(t, chain)

	// The lost block can be imported again.
	insert(t, chain, blocks[3:])
	require.Equal(t, blocks[3].Hash(), chain.GetBestBlockHash())
	checkChainInvariants(t, chain)
}

func TestRecoverNoValidState(t *testing.T) {
	env := newTestEnv(t, noUnity)
	blocks := env.generate(env.chain.Genesis(), 3, 1)
	insert(t, env.chain, blocks)

	for _, block := range blocks {
		require.NoError(t, rawdb.DeleteStateBlob(env.db, block.Root()))
	}
	require.NoError(t, rawdb.DeleteStateBlob(env.db, env.chain.Genesis().Root()))

	if _, err := env.reopen(t); !errors.Is(err, ErrNoValidState) {
		t.Fatalf("error mismatch: have %v, want %v", err, ErrNoValidState)
	}
}

func TestRecoverOnDemand(t *testing.T) {
	env := newTestEnv(t, noUnity)
	blocks := env.generate(env.chain.Genesis(), 6, 1)
	insert(t, env.chain, blocks)

	require.NoError(t, rawdb.DeleteStateBlob(env.db, blocks[5].Root()))
	require.NoError(t, env.chain.Recover())
	require.Equal(t, blocks[4].Hash(), env.chain.GetBestBlockHash())
	require.Equal(t, blocks[4].Hash(), env.chain.StartingBlock().Hash())

	// Importing the rewound block again is a no-op, reconciling restores it.
	res, err := env.chain.TryToConnect(blocks[5])
	require.NoError(t, err)
	require.Equal(t, ImportExist, res)
	require.NoError(t, env.chain.ReconcileState())
	require.Equal(t, blocks[5].Hash(), env.chain.GetBestBlockHash())
	checkChainInvariants(t, env.chain)
}
