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
package rawdb

import (
	"math/big"
	"testing"

	"github.com/aionnetwork/unitychain/core/types"
	"github.com/aionnetwork/unitychain/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Tests block storage and retrieval operations.
func TestBlockStorage(t *testing.T) {
	db := NewMemoryDatabase()

	header := &types.Header{
		Extra:       []byte("test block"),
		TxHash:      types.EmptyTxsHash,
		ReceiptHash: types.EmptyReceiptsHash,
		Difficulty:  big.NewInt(1),
		SealType:    types.SealMining,
		Seal:        &types.MiningSeal{Nonce: types.EncodeNonce(42)},
	}
	block := types.NewBlockWithHeader(header)
	if entry := ReadBlock(db, block.Hash()); entry != nil {
		t.Fatalf("Non existent block returned: %v", entry)
	}
	if HasBlock(db, block.Hash()) {
		t.Fatalf("Non existent block reported present")
	}
	if err := WriteBlock(db, block); err != nil {
		t.Fatalf("Failed to write block: %v", err)
	}
	if entry := ReadBlock(db, block.Hash()); entry == nil {
		t.Fatalf("Stored block not found")
	} else if entry.Hash() != block.Hash() {
		t.Fatalf("Retrieved block mismatch: have %v, want %v", entry, block)
	}
	if entry := ReadHeader(db, block.Hash()); entry == nil || entry.Hash() != block.Hash() {
		t.Fatalf("Retrieved header mismatch: have %v", entry)
	}
	if err := DeleteBlock(db, block.Hash()); err != nil {
		t.Fatalf("Failed to delete block: %v", err)
	}
	if entry := ReadBlock(db, block.Hash()); entry != nil {
		t.Fatalf("Deleted block returned: %v", entry)
	}
}

func TestLevelStorage(t *testing.T) {
	db := NewMemoryDatabase()

	if _, ok := ReadLevel(db, 3); ok {
		t.Fatalf("Non existent level returned")
	}
	infos := []types.BlockInfo{
		{Hash: common.HexToHash("0x01"), TotalDifficulty: big.NewInt(100), MainChain: true},
		{Hash: common.HexToHash("0x02"), TotalDifficulty: big.NewInt(90)},
	}
	if err := WriteLevel(db, 3, infos); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}
	stored, ok := ReadLevel(db, 3)
	if !ok || len(stored) != 2 {
		t.Fatalf("Stored level mismatch: have %v, want %v", stored, infos)
	}
	for i := range infos {
		if stored[i].Hash != infos[i].Hash || stored[i].TotalDifficulty.Cmp(infos[i].TotalDifficulty) != 0 || stored[i].MainChain != infos[i].MainChain {
			t.Errorf("record %d mismatch: have %v, want %v", i, stored[i], infos[i])
		}
	}
	if info := ReadBlockInfo(db, common.HexToHash("0x02"), 3); info == nil || info.MainChain {
		t.Fatalf("Block info lookup mismatch: %v", info)
	}
	if info := ReadBlockInfo(db, common.HexToHash("0x03"), 3); info != nil {
		t.Fatalf("Unknown block info returned: %v", info)
	}
	// An empty level is present but holds nothing.
	if err := WriteLevel(db, 4, nil); err != nil {
		t.Fatalf("Failed to write empty level: %v", err)
	}
	if stored, ok := ReadLevel(db, 4); !ok || len(stored) != 0 {
		t.Fatalf("Empty level mismatch: have %v, %v", stored, ok)
	}
	if err := DeleteLevel(db, 3); err != nil {
		t.Fatalf("Failed to delete level: %v", err)
	}
	if HasLevel(db, 3) {
		t.Fatalf("Deleted level still present")
	}
}

func TestHeadStorage(t *testing.T) {
	db := NewMemoryDatabase()

	if hash := ReadHeadBlockHash(db); hash != (common.Hash{}) {
		t.Fatalf("Non head block returned: %x", hash)
	}
	if _, ok := ReadBlockStoreHeight(db); ok {
		t.Fatalf("Non existent store height returned")
	}
	head := crypto.Keccak256Hash([]byte("head"))
	if err := WriteHeadBlockHash(db, head); err != nil {
		t.Fatal(err)
	}
	if err := WriteBlockStoreHeight(db, 1<<40); err != nil {
		t.Fatal(err)
	}
	if hash := ReadHeadBlockHash(db); hash != head {
		t.Fatalf("Head block hash mismatch: have %x, want %x", hash, head)
	}
	if number, ok := ReadBlockStoreHeight(db); !ok || number != 1<<40 {
		t.Fatalf("Store height mismatch: have %d, want %d", number, uint64(1<<40))
	}
}

func TestStateBlobStorage(t *testing.T) {
	db := NewMemoryDatabase()
	root := crypto.Keccak256Hash([]byte("state"))

	if HasStateBlob(db, root) {
		t.Fatalf("Non existent state reported present")
	}
	if err := WriteStateBlob(db, root, []byte{0xc0}); err != nil {
		t.Fatal(err)
	}
	if blob := ReadStateBlob(db, root); len(blob) != 1 || blob[0] != 0xc0 {
		t.Fatalf("State blob mismatch: %x", blob)
	}
	if err := DeleteStateBlob(db, root); err != nil {
		t.Fatal(err)
	}
	if HasStateBlob(db, root) {
		t.Fatalf("Deleted state still present")
	}
}

func TestChainConfigStorage(t *testing.T) {
	db := NewMemoryDatabase()
	hash := common.HexToHash("0xabcd")

	if ReadChainConfig(db, hash) != nil {
		t.Fatalf("Non existent config returned")
	}
	config := params.TestChainConfig.WithFork(params.UnityFork, 2)
	if err := WriteChainConfig(db, hash, config); err != nil {
		t.Fatal(err)
	}
	stored := ReadChainConfig(db, hash)
	if stored == nil || !stored.IsUnity(3) || stored.IsUnity(2) || stored.ChainID.Cmp(config.ChainID) != 0 {
		t.Fatalf("Config mismatch: have %v, want %v", stored, config)
	}
}
