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
package core

import (
	"errors"

	"github.com/aionnetwork/unitychain/core/state"
)

var (
	// ErrNoGenesis is returned when the database holds no genesis block.
	ErrNoGenesis = errors.New("genesis not found in chain")

	// ErrMissingGenesis is returned when the level index has lost the genesis
	// record. The index cannot be rebuilt without it.
	ErrMissingGenesis = errors.New("genesis missing from level index")

	// ErrNoValidState is returned when no main-chain block down to genesis has
	// both a readable world state and a stored body.
	ErrNoValidState = errors.New("no block with a valid world state")

	// ErrMissingState is returned when the world state of a parent block
	// cannot be read.
	ErrMissingState = state.ErrMissingState

	// ErrKnownBlock is returned when a block to import is already known locally.
	ErrKnownBlock = errors.New("block already known")

	// ErrUnknownAncestor is returned when validating a block requires an
	// ancestor that is unknown.
	ErrUnknownAncestor = errors.New("unknown ancestor")

	// ErrFutureBlock is returned when a block's timestamp is further in the
	// future than the allowed clock drift.
	ErrFutureBlock = errors.New("block in the future")

	// ErrStateRootMismatch is returned when the executed state root differs
	// from the one declared in the header.
	ErrStateRootMismatch = errors.New("state root mismatch")

	// ErrReceiptRootMismatch is returned when the executed receipts root
	// differs from the one declared in the header.
	ErrReceiptRootMismatch = errors.New("receipts root mismatch")

	// ErrTxRootMismatch is returned when the transactions of a block do not
	// match its header.
	ErrTxRootMismatch = errors.New("transaction root mismatch")

	// ErrBlockNumberMismatch is returned when a rewind target is not below
	// the current head.
	ErrBlockNumberMismatch = errors.New("block number mismatch")

	// ErrNonceMismatch is returned by the state processor if a transaction's
	// nonce does not match the sender account.
	ErrNonceMismatch = errors.New("nonce mismatch")

	// ErrCorruptIndex is returned when the level index references blocks that
	// are not in the block store.
	ErrCorruptIndex = errors.New("level index corrupt")
)
