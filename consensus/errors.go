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
package consensus

import "errors"

var (
	// ErrUnknownAncestor is returned when validating a block requires an ancestor
	// that is unknown.
	ErrUnknownAncestor = errors.New("unknown ancestor")

	// ErrFutureBlock is returned when a block's timestamp is in the future according
	// to the current node.
	ErrFutureBlock = errors.New("block in the future")

	// ErrInvalidNumber is returned if a block's number doesn't equal its parent's
	// plus one.
	ErrInvalidNumber = errors.New("invalid block number")

	// ErrInvalidSealType is returned if a block carries the wrong kind of seal for
	// its position in the chain.
	ErrInvalidSealType = errors.New("invalid seal type")

	// ErrInvalidDifficulty is returned if the difficulty of a block does not match
	// the recalculated value for its seal type.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidPoW is returned if the mining seal does not meet the target.
	ErrInvalidPoW = errors.New("invalid proof-of-work")

	// ErrInvalidStakeSignature is returned if the staking signature does not
	// cover the seal hash.
	ErrInvalidStakeSignature = errors.New("invalid staking signature")

	// ErrInvalidSeed is returned if the staking seed is not the signature of the
	// previous staking seed.
	ErrInvalidSeed = errors.New("invalid staking seed")

	// ErrMissingSeal is returned for headers submitted without a proof.
	ErrMissingSeal = errors.New("missing seal")
)
