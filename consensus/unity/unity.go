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
// Package unity implements the hybrid proof-of-work/proof-of-stake consensus
// engine. Before the unity fork every block is mined; afterwards mining and
// staking blocks alternate.
package unity

import (
	"time"

	"github.com/aionnetwork/unitychain/consensus"
)

// Mode defines the type and amount of seal verification an engine makes.
type Mode uint

const (
	ModeNormal Mode = iota
	ModeFake
	ModeFullFake
)

// Unity is the hybrid consensus engine.
type Unity struct {
	mode Mode

	// The fields below are hooks for testing
	fakeFail  *uint64        // Block number which fails seal check even in fake mode
	fakeDelay *time.Duration // Time delay to sleep for before returning from verify
	now       func() time.Time
}

// New creates a full sized unity engine.
func New() *Unity {
	return &Unity{mode: ModeNormal, now: time.Now}
}

// NewFaker creates a unity engine with a fake proof-of-work scheme that accepts
// all mining seals as valid. Seal types, difficulties and staking signatures
// are still verified.
func NewFaker() *Unity {
	return &Unity{mode: ModeFake, now: time.Now}
}

// NewFakeFailer creates a unity engine with a fake proof-of-work scheme that
// accepts all blocks as valid apart from the single one specified, though
// they still have to conform to the consensus rules.
func NewFakeFailer(fail uint64) *Unity {
	return &Unity{mode: ModeFake, fakeFail: &fail, now: time.Now}
}

// NewFakeDelayer creates a unity engine with a fake proof-of-work scheme that
// accepts all blocks as valid, but delays verifications by some time.
func NewFakeDelayer(delay time.Duration) *Unity {
	return &Unity{mode: ModeFake, fakeDelay: &delay, now: time.Now}
}

// NewFullFaker creates a unity engine with a full fake scheme that accepts
// all blocks as valid, without checking any consensus rules whatsoever.
func NewFullFaker() *Unity {
	return &Unity{mode: ModeFullFake, now: time.Now}
}

var _ consensus.Engine = (*Unity)(nil)
