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
// Package rawdb contains a collection of low level database accessors.
package rawdb

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

// The fields below define the low level database schema prefixing.
var (
	// headBlockKey tracks the latest known full block's hash.
	headBlockKey = []byte("LastBlock")

	// blockStoreHeightKey tracks the highest block number ever written to the
	// block store, independent of fork choice.
	blockStoreHeightKey = []byte("LastBlockNumber")

	// Data item prefixes (use single byte to avoid mixing data types).
	blockPrefix = []byte("b") // blockPrefix + hash -> block
	levelPrefix = []byte("l") // levelPrefix + num (uint64 big endian) -> []BlockInfo
	statePrefix = []byte("s") // statePrefix + root -> state blob

	configPrefix = []byte("ethereum-config-") // config prefix for the db
)

// encodeBlockNumber encodes a block number as big endian uint64
func encodeBlockNumber(number uint64) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, number)
	return enc
}

// blockKey = blockPrefix + hash
func blockKey(hash common.Hash) []byte {
	return append(append([]byte{}, blockPrefix...), hash.Bytes()...)
}

// levelKey = levelPrefix + num (uint64 big endian)
func levelKey(number uint64) []byte {
	return append(append([]byte{}, levelPrefix...), encodeBlockNumber(number)...)
}

// stateKey = statePrefix + root
func stateKey(root common.Hash) []byte {
	return append(append([]byte{}, statePrefix...), root.Bytes()...)
}

// configKey = configPrefix + hash
func configKey(hash common.Hash) []byte {
	return append(append([]byte{}, configPrefix...), hash.Bytes()...)
}
