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
	"fmt"

	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// HasLevel reports whether an index record exists for the given height. An
// empty record still counts as present.
func HasLevel(db ethdb.KeyValueReader, number uint64) bool {
	if has, err := db.Has(levelKey(number)); !has || err != nil {
		return false
	}
	return true
}

// ReadLevel retrieves the index records of all blocks stored at the given
// height. The second return value is false if the level is absent.
func ReadLevel(db ethdb.KeyValueReader, number uint64) ([]types.BlockInfo, bool) {
	data, err := db.Get(levelKey(number))
	if err != nil || data == nil {
		return nil, false
	}
	var infos []types.BlockInfo
	if err := rlp.DecodeBytes(data, &infos); err != nil {
		log.Error("Invalid level index RLP", "number", number, "err", err)
		return nil, false
	}
	return infos, true
}

// ReadBlockInfo retrieves the index record of one block.
func ReadBlockInfo(db ethdb.KeyValueReader, hash common.Hash, number uint64) *types.BlockInfo {
	infos, _ := ReadLevel(db, number)
	for i := range infos {
		if infos[i].Hash == hash {
			return &infos[i]
		}
	}
	return nil
}

// WriteLevel stores the index records of one height, replacing any previous
// content.
func WriteLevel(db ethdb.KeyValueWriter, number uint64, infos []types.BlockInfo) error {
	if infos == nil {
		infos = []types.BlockInfo{}
	}
	data, err := rlp.EncodeToBytes(infos)
	if err != nil {
		return fmt.Errorf("failed to RLP encode level %d: %w", number, err)
	}
	if err := db.Put(levelKey(number), data); err != nil {
		return fmt.Errorf("failed to store level %d: %w", number, err)
	}
	return nil
}

// DeleteLevel removes the index records of one height.
func DeleteLevel(db ethdb.KeyValueWriter, number uint64) error {
	if err := db.Delete(levelKey(number)); err != nil {
		return fmt.Errorf("failed to delete level %d: %w", number, err)
	}
	return nil
}
