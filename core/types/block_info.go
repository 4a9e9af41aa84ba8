// Copyright 2014 The go-ethereum Authors
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

package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// BlockInfo is the level index record of one stored block. Several records
// may share a height when branches compete; at most one of them is flagged as
// main chain.
type BlockInfo struct {
	Hash            common.Hash
	TotalDifficulty *big.Int
	MainChain       bool
}

// Copy returns a deep copy of the record.
func (bi *BlockInfo) Copy() BlockInfo {
	cpy := BlockInfo{Hash: bi.Hash, MainChain: bi.MainChain, TotalDifficulty: new(big.Int)}
	if bi.TotalDifficulty != nil {
		cpy.TotalDifficulty.Set(bi.TotalDifficulty)
	}
	return cpy
}

func (bi BlockInfo) String() string {
	return fmt.Sprintf("{hash: %x, td: %v, main: %v}", bi.Hash, bi.TotalDifficulty, bi.MainChain)
}

// CopyBlockInfos deep-copies a level.
func CopyBlockInfos(infos []BlockInfo) []BlockInfo {
	if infos == nil {
		return nil
	}
	cpy := make([]BlockInfo, len(infos))
	for i := range infos {
		cpy[i] = infos[i].Copy()
	}
	return cpy
}
