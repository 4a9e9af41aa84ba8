// Copyright 2015 The go-ethereum Authors
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

package params

import "math/big"

const (
	MaximumExtraDataSize uint64 = 32 // Maximum size extra data may be after Genesis.

	DifficultyBoundDivisorBits uint   = 11 // Difficulty moves by at most 1/2048 per block of the same seal type.
	MiningDurationLimit        uint64 = 10 // Same-seal block interval below which mining difficulty goes up.
	StakingDurationLimit       uint64 = 10 // Same-seal block interval below which staking difficulty goes up.

	AllowedFutureBlockTime uint64 = 15 // Max seconds a header timestamp may be ahead of the local clock.

	StakingSeedLength = 64 // Length of a staking seed (R || S of a secp256k1 signature).
)

var (
	GenesisDifficulty        = big.NewInt(131072) // Difficulty of the Genesis block.
	MinimumDifficulty        = big.NewInt(131072) // The minimum that the mining difficulty may ever be.
	InitialStakingDifficulty = big.NewInt(131072) // Difficulty of the first staking block after the unity fork.
	MinimumStakingDifficulty = big.NewInt(16)     // The minimum that the staking difficulty may ever be.

	BlockReward = new(big.Int).Mul(big.NewInt(15), big.NewInt(1e17)) // Block reward in nAmp credited to the coinbase.

	// GenesisStakingSeed is the seed the first staking block signs over.
	GenesisStakingSeed = make([]byte, StakingSeedLength)
)
