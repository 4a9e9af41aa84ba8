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

package params

import (
	"math/big"
	"testing"
)

func TestForkActivationBoundary(t *testing.T) {
	config := TestChainConfig.WithFork(UnityFork, 2)

	tests := []struct {
		number uint64
		active bool
	}{
		{0, false},
		{1, false},
		{2, false},
		{3, true},
		{4, true},
	}
	for _, tt := range tests {
		if have := config.IsUnity(tt.number); have != tt.active {
			t.Errorf("block %d: unity active mismatch: have %v, want %v", tt.number, have, tt.active)
		}
	}
	if !config.IsUnityForkBlock(3) {
		t.Errorf("block 3 should be the first unity block")
	}
	if config.IsUnityForkBlock(2) {
		t.Errorf("block 2 should not be the first unity block")
	}
}

func TestUnregisteredForkInactive(t *testing.T) {
	var registry ForkRegistry
	if registry.IsActive(UnityFork, 1<<62) {
		t.Fatalf("unregistered fork reported active")
	}
	if TestChainConfig.IsUnity(100) {
		t.Fatalf("test config should not enable unity")
	}
}

func TestWithForkDoesNotMutate(t *testing.T) {
	base := &ChainConfig{ChainID: big.NewInt(1), Forks: ForkRegistry{UnityFork: 5}}
	derived := base.WithFork(UnityFork, 1)

	if base.Forks[UnityFork] != 5 {
		t.Fatalf("base registry mutated: have %d, want 5", base.Forks[UnityFork])
	}
	if derived.Forks[UnityFork] != 1 {
		t.Fatalf("derived registry mismatch: have %d, want 1", derived.Forks[UnityFork])
	}
}
