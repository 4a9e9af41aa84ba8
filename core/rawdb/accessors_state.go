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

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
)

// ReadStateBlob retrieves the encoded world state committed under root.
func ReadStateBlob(db ethdb.KeyValueReader, root common.Hash) []byte {
	data, _ := db.Get(stateKey(root))
	return data
}

// HasStateBlob reports whether a world state is stored under root.
func HasStateBlob(db ethdb.KeyValueReader, root common.Hash) bool {
	if has, err := db.Has(stateKey(root)); !has || err != nil {
		return false
	}
	return true
}

// WriteStateBlob stores an encoded world state under its root.
func WriteStateBlob(db ethdb.KeyValueWriter, root common.Hash, blob []byte) error {
	if err := db.Put(stateKey(root), blob); err != nil {
		return fmt.Errorf("failed to store state %x: %w", root, err)
	}
	return nil
}

// DeleteStateBlob removes the world state stored under root.
func DeleteStateBlob(db ethdb.KeyValueWriter, root common.Hash) error {
	if err := db.Delete(stateKey(root)); err != nil {
		return fmt.Errorf("failed to delete state %x: %w", root, err)
	}
	return nil
}
