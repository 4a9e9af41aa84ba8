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
	"encoding/binary"
	"fmt"

	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// ReadBlockRLP retrieves a block in its raw RLP database encoding.
func ReadBlockRLP(db ethdb.KeyValueReader, hash common.Hash) rlp.RawValue {
	data, _ := db.Get(blockKey(hash))
	return data
}

// HasBlock verifies the existence of a block corresponding to the hash.
func HasBlock(db ethdb.KeyValueReader, hash common.Hash) bool {
	if has, err := db.Has(blockKey(hash)); !has || err != nil {
		return false
	}
	return true
}

// ReadBlock retrieves an entire block corresponding to the hash, assembling it
// back from the stored RLP. If the block is not found, nil is returned.
func ReadBlock(db ethdb.KeyValueReader, hash common.Hash) *types.Block {
	data := ReadBlockRLP(db, hash)
	if len(data) == 0 {
		return nil
	}
	block := new(types.Block)
	if err := rlp.DecodeBytes(data, block); err != nil {
		log.Error("Invalid block RLP", "hash", hash, "err", err)
		return nil
	}
	return block
}

// ReadHeader retrieves the header of the block corresponding to the hash.
func ReadHeader(db ethdb.KeyValueReader, hash common.Hash) *types.Header {
	block := ReadBlock(db, hash)
	if block == nil {
		return nil
	}
	return block.Header()
}

// WriteBlock serializes a block into the database, keyed by its hash.
func WriteBlock(db ethdb.KeyValueWriter, block *types.Block) error {
	data, err := rlp.EncodeToBytes(block)
	if err != nil {
		return fmt.Errorf("failed to RLP encode block %d: %w", block.NumberU64(), err)
	}
	if err := db.Put(blockKey(block.Hash()), data); err != nil {
		return fmt.Errorf("failed to store block %d: %w", block.NumberU64(), err)
	}
	return nil
}

// DeleteBlock removes a block body.
func DeleteBlock(db ethdb.KeyValueWriter, hash common.Hash) error {
	if err := db.Delete(blockKey(hash)); err != nil {
		return fmt.Errorf("failed to delete block %x: %w", hash, err)
	}
	return nil
}

// ReadHeadBlockHash retrieves the hash of the current canonical head block.
func ReadHeadBlockHash(db ethdb.KeyValueReader) common.Hash {
	data, _ := db.Get(headBlockKey)
	if len(data) == 0 {
		return common.Hash{}
	}
	return common.BytesToHash(data)
}

// WriteHeadBlockHash stores the head block's hash.
func WriteHeadBlockHash(db ethdb.KeyValueWriter, hash common.Hash) error {
	if err := db.Put(headBlockKey, hash.Bytes()); err != nil {
		return fmt.Errorf("failed to store last block's hash: %w", err)
	}
	return nil
}

// ReadBlockStoreHeight retrieves the highest block number present in the
// block store.
func ReadBlockStoreHeight(db ethdb.KeyValueReader) (uint64, bool) {
	data, _ := db.Get(blockStoreHeightKey)
	if len(data) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(data), true
}

// WriteBlockStoreHeight stores the highest block number present in the block
// store.
func WriteBlockStoreHeight(db ethdb.KeyValueWriter, number uint64) error {
	if err := db.Put(blockStoreHeightKey, encodeBlockNumber(number)); err != nil {
		return fmt.Errorf("failed to store block store height: %w", err)
	}
	return nil
}
