// Copyright 2017 The go-ethereum Authors
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
package unity

import (
	"math/big"

	"github.com/aionnetwork/unitychain/consensus"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/aionnetwork/unitychain/params"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// CalcDifficulty is the difficulty adjustment algorithm. Mining and staking
// blocks keep separate difficulties: a new block adjusts the difficulty of
// the nearest ancestor of its own seal type. The first staking block starts
// from the initial staking difficulty.
func (u *Unity) CalcDifficulty(chain consensus.ChainHeaderReader, time uint64, parent *types.Header, sealType types.SealType) *big.Int {
	anchor, err := sealAncestor(chain, parent, sealType)
	if err != nil {
		log.Warn("Failed to find difficulty anchor", "number", parent.Number+1, "seal", sealType, "err", err)
		return new(big.Int)
	}
	switch sealType {
	case types.SealStaking:
		if anchor == nil {
			return new(big.Int).Set(params.InitialStakingDifficulty)
		}
		return calcDifficulty(time, anchor, params.StakingDurationLimit, params.MinimumStakingDifficulty)
	default:
		if anchor == nil {
			return new(big.Int).Set(params.MinimumDifficulty)
		}
		return calcDifficulty(time, anchor, params.MiningDurationLimit, params.MinimumDifficulty)
	}
}

// calcDifficulty moves the anchor difficulty by 1/2048 of itself: up if the
// block follows the anchor faster than limit, down otherwise, never below
// minimum.
func calcDifficulty(time uint64, anchor *types.Header, limit uint64, minimum *big.Int) *big.Int {
	/*
		Algorithm
		block_diff = adiff + adiff / 2048 * (1 if time - atime < limit else -1)

		Where:
		- adiff = difficulty of the nearest ancestor with the same seal type
		- atime = timestamp of that ancestor
	*/
	diff := new(uint256.Int)
	diff.SetFromBig(anchor.Difficulty)
	adjust := diff.Clone()
	adjust.Rsh(adjust, params.DifficultyBoundDivisorBits)

	if time > anchor.Time && time-anchor.Time < limit {
		diff.Add(diff, adjust)
	} else {
		diff.Sub(diff, adjust)
	}
	floor := new(uint256.Int)
	floor.SetFromBig(minimum)
	if diff.Lt(floor) {
		diff.Set(floor)
	}
	return diff.ToBig()
}
