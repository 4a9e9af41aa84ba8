// Copyright 2016 The go-ethereum Authors
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
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// UnityFork names the upgrade that switches block production from pure
// mining to alternating mining and staking blocks.
const UnityFork = "unity"

var (
	// MainnetChainConfig is the chain parameters to run a node on the main network.
	MainnetChainConfig = &ChainConfig{
		ChainID: big.NewInt(256),
		Forks: ForkRegistry{
			UnityFork: 9_200_000,
		},
	}

	// TestChainConfig contains no active upgrades. Tests that need the
	// hybrid rules copy it and register the unity fork explicitly.
	TestChainConfig = &ChainConfig{
		ChainID: big.NewInt(1337),
		Forks:   ForkRegistry{},
	}
)

// ForkRegistry maps named protocol upgrades to their configured activation
// numbers.
//
// A fork registered at number N is active for every block numbered strictly
// greater than N: configuring the unity fork at 2 makes block 3 the first
// hybrid block. Consensus depends on this exact boundary, so it must not be
// "corrected" to N inclusive.
type ForkRegistry map[string]uint64

// IsActive reports whether the named fork applies to the block with the given
// number. Unregistered forks are never active.
func (r ForkRegistry) IsActive(name string, number uint64) bool {
	activation, ok := r[name]
	if !ok {
		return false
	}
	return number > activation
}

// Activation returns the configured activation number of a fork.
func (r ForkRegistry) Activation(name string) (uint64, bool) {
	activation, ok := r[name]
	return activation, ok
}

// Copy returns an independent copy of the registry.
func (r ForkRegistry) Copy() ForkRegistry {
	cpy := make(ForkRegistry, len(r))
	for name, number := range r {
		cpy[name] = number
	}
	return cpy
}

func (r ForkRegistry) String() string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, r[name]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ChainConfig is the core config which determines the blockchain settings.
//
// ChainConfig is stored in the database on a per block basis. This means
// that any network, identified by its genesis block, can have its own
// set of configuration options.
type ChainConfig struct {
	ChainID *big.Int     `json:"chainId"` // chainId identifies the current chain
	Forks   ForkRegistry `json:"forks,omitempty"`
}

// String implements the fmt.Stringer interface.
func (c *ChainConfig) String() string {
	return fmt.Sprintf("{ChainID: %v Forks: %v}", c.ChainID, c.Forks)
}

// IsUnity returns whether num is either equal to the first hybrid block or greater.
func (c *ChainConfig) IsUnity(num uint64) bool {
	return c.Forks.IsActive(UnityFork, num)
}

// IsUnityForkBlock reports whether num is the first block produced under the
// hybrid rules.
func (c *ChainConfig) IsUnityForkBlock(num uint64) bool {
	activation, ok := c.Forks.Activation(UnityFork)
	return ok && activation < math.MaxUint64 && num == activation+1
}

// WithFork returns a copy of the config with the named fork registered at
// the given activation number.
func (c *ChainConfig) WithFork(name string, activation uint64) *ChainConfig {
	cpy := &ChainConfig{Forks: c.Forks.Copy()}
	if c.ChainID != nil {
		cpy.ChainID = new(big.Int).Set(c.ChainID)
	}
	cpy.Forks[name] = activation
	return cpy
}
