// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/aionnetwork/unitychain/consensus/unity"
	"github.com/aionnetwork/unitychain/core"
	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/stretchr/testify/require"
)

func newTestChain(t *testing.T, genesis *core.Genesis) (*core.BlockChain, ethdb.KeyValueStore) {
	t.Helper()

	db := rawdb.NewMemoryDatabase()
	genesis.MustCommit(db)
	chain, err := core.NewBlockChain(db, nil, genesis.Config, unity.NewFaker())
	require.NoError(t, err)
	t.Cleanup(chain.Stop)
	return chain, db
}

func TestExportImportRoundTrip(t *testing.T) {
	genesis := core.DeveloperGenesisBlock(math.MaxUint64, common.Address{0x01})
	_, blocks, _ := core.GenerateChainWithGenesis(genesis, unity.NewFaker(), 12, nil)

	src, _ := newTestChain(t, genesis)
	for _, block := range blocks {
		res, err := src.TryToConnect(block)
		require.NoError(t, err)
		require.Equal(t, core.ImportedBest, res)
	}

	dir := t.TempDir()
	files := []string{filepath.Join(dir, "first.rlp"), filepath.Join(dir, "second.rlp.gz")}
	writeExport(t, src, files[0], 0, 6)
	writeExport(t, src, files[1], 7, 12)

	dst, _ := newTestChain(t, genesis)
	stats, err := importFiles(dst, files)
	require.NoError(t, err)
	require.Equal(t, 12, stats[core.ImportedBest])
	require.Equal(t, src.CurrentBlock().Hash(), dst.CurrentBlock().Hash())
	require.Zero(t, src.GetTotalDifficulty().Cmp(dst.GetTotalDifficulty()))

	// Importing the same files again changes nothing.
	stats, err = importFiles(dst, files)
	require.NoError(t, err)
	require.Equal(t, 12, stats[core.ImportExist])
}

func TestExportRangeErrors(t *testing.T) {
	genesis := core.DeveloperGenesisBlock(math.MaxUint64, common.Address{0x01})
	chain, _ := newTestChain(t, genesis)

	dir := t.TempDir()
	require.Error(t, exportToFile(chain, filepath.Join(dir, "reversed.rlp"), 2, 1))
	require.Error(t, exportToFile(chain, filepath.Join(dir, "beyond.rlp"), 0, 1))
}

func TestImportSkipsUnknownParents(t *testing.T) {
	genesis := core.DeveloperGenesisBlock(math.MaxUint64, common.Address{0x01})
	_, blocks, _ := core.GenerateChainWithGenesis(genesis, unity.NewFaker(), 4, nil)

	src, _ := newTestChain(t, genesis)
	for _, block := range blocks {
		_, err := src.TryToConnect(block)
		require.NoError(t, err)
	}
	file := filepath.Join(t.TempDir(), "chain.rlp")
	writeExport(t, src, file, 1, 4)

	// A chain with a different genesis has no parent for block 1.
	other := core.DeveloperGenesisBlock(math.MaxUint64, common.Address{0x02})
	dst, _ := newTestChain(t, other)
	stats, err := importFiles(dst, []string{file})
	require.NoError(t, err)
	require.Equal(t, 4, stats[core.ImportNoParent])
	require.Equal(t, other.MustCommit(rawdb.NewMemoryDatabase()).Hash(), dst.CurrentBlock().Hash())
}

func TestDecodeBlocksSkipsGenesis(t *testing.T) {
	genesis := core.DeveloperGenesisBlock(math.MaxUint64, common.Address{0x01})
	chain, _ := newTestChain(t, genesis)

	file := filepath.Join(t.TempDir(), "genesis.rlp")
	writeExport(t, chain, file, 0, 0)

	blocks, err := decodeBlocks(file)
	require.NoError(t, err)
	require.Empty(t, blocks)

	_, err = decodeBlocks(filepath.Join(t.TempDir(), "missing.rlp"))
	require.Error(t, err)
}

func writeExport(t *testing.T, chain *core.BlockChain, file string, first, last uint64) {
	t.Helper()
	require.NoError(t, exportToFile(chain, file, first, last))
}

func exportToFile(chain *core.BlockChain, file string, first, last uint64) error {
	w, err := openExport(file, false)
	if err != nil {
		return err
	}
	if err := exportRange(chain, w, first, last); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
