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
	"fmt"
	"math/big"

	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/aionnetwork/unitychain/core/state"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/aionnetwork/unitychain/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
)

var errGenesisNoConfig = errors.New("genesis has no chain configuration")

// Genesis specifies the header fields, state of a genesis block. It also defines
// the fork activation numbers through the chain configuration.
type Genesis struct {
	Config     *params.ChainConfig `json:"config"`
	Timestamp  uint64              `json:"timestamp"`
	ExtraData  hexutil.Bytes       `json:"extraData"`
	Difficulty *big.Int            `json:"difficulty"`
	Coinbase   common.Address      `json:"coinbase"`
	Alloc      GenesisAlloc        `json:"alloc"`
}

// GenesisAlloc specifies the initial state that is part of the genesis block.
type GenesisAlloc map[common.Address]GenesisAccount

// GenesisAccount is an account in the state of the genesis block.
type GenesisAccount struct {
	Balance *big.Int `json:"balance"`
	Nonce   uint64   `json:"nonce,omitempty"`
}

// GenesisMismatchError is raised when trying to overwrite an existing
// genesis block with an incompatible one.
type GenesisMismatchError struct {
	Stored, New common.Hash
}

func (e *GenesisMismatchError) Error() string {
	return fmt.Sprintf("database contains incompatible genesis (have %x, new %x)", e.Stored, e.New)
}

// SetupGenesisBlock writes or updates the genesis block in db.
//
//	                     genesis == nil       genesis != nil
//	                  +------------------------------------------
//	db has no genesis |  main-net default  |  genesis
//	db has genesis    |  from DB           |  genesis (if compatible)
//
// The stored chain configuration will be updated if it is compatible (i.e. does not
// specify a fork block below the local head block).
func SetupGenesisBlock(db ethdb.KeyValueStore, genesis *Genesis) (*params.ChainConfig, common.Hash, error) {
	if genesis != nil && genesis.Config == nil {
		return params.TestChainConfig, common.Hash{}, errGenesisNoConfig
	}
	// Just commit the new block if there is no stored genesis block.
	infos, ok := rawdb.ReadLevel(db, 0)
	if !ok || len(infos) == 0 {
		if genesis == nil {
			log.Info("Writing default main-net genesis block")
			genesis = DefaultGenesisBlock()
		} else {
			log.Info("Writing custom genesis block")
		}
		block, err := genesis.Commit(db)
		if err != nil {
			return genesis.Config, common.Hash{}, err
		}
		return genesis.Config, block.Hash(), nil
	}
	stored := infos[0].Hash
	if genesis != nil {
		block, err := genesis.ToBlock()
		if err != nil {
			return genesis.Config, common.Hash{}, err
		}
		if hash := block.Hash(); hash != stored {
			return genesis.Config, hash, &GenesisMismatchError{stored, hash}
		}
		if err := rawdb.WriteChainConfig(db, stored, genesis.Config); err != nil {
			return genesis.Config, stored, err
		}
		return genesis.Config, stored, nil
	}
	config := rawdb.ReadChainConfig(db, stored)
	if config == nil {
		log.Warn("Found genesis block without chain config")
		config = params.MainnetChainConfig
		if err := rawdb.WriteChainConfig(db, stored, config); err != nil {
			return config, stored, err
		}
	}
	return config, stored, nil
}

// toState applies the genesis allocation to a fresh state.
func (g *Genesis) toState(db *state.Database) (*state.StateDB, error) {
	statedb, err := state.New(state.EmptyRoot, db)
	if err != nil {
		return nil, err
	}
	for addr, account := range g.Alloc {
		if account.Balance != nil {
			statedb.AddBalance(addr, account.Balance)
		}
		statedb.SetNonce(addr, account.Nonce)
	}
	return statedb, nil
}

func (g *Genesis) header(root common.Hash) *types.Header {
	head := &types.Header{
		Coinbase:    g.Coinbase,
		Root:        root,
		ReceiptHash: types.EmptyReceiptsHash,
		Difficulty:  g.Difficulty,
		Time:        g.Timestamp,
		Extra:       g.ExtraData,
		SealType:    types.SealMining,
		Seal:        &types.MiningSeal{},
	}
	if g.Difficulty == nil {
		head.Difficulty = params.GenesisDifficulty
	}
	return head
}

// ToBlock returns the genesis block according to genesis specification.
func (g *Genesis) ToBlock() (*types.Block, error) {
	statedb, err := g.toState(state.NewDatabase(rawdb.NewMemoryDatabase(), 0))
	if err != nil {
		return nil, err
	}
	return types.NewBlock(g.header(statedb.IntermediateRoot()), nil), nil
}

// Commit writes the block and state of a genesis specification to the database.
// The block is committed as the canonical head block.
func (g *Genesis) Commit(db ethdb.KeyValueStore) (*types.Block, error) {
	statedb, err := g.toState(state.NewDatabase(db, 0))
	if err != nil {
		return nil, err
	}
	batch := db.NewBatch()
	root, err := statedb.Commit(batch)
	if err != nil {
		return nil, err
	}
	block := types.NewBlock(g.header(root), nil)
	config := g.Config
	if config == nil {
		config = params.TestChainConfig
	}
	genesisInfo := []types.BlockInfo{{
		Hash:            block.Hash(),
		TotalDifficulty: block.Difficulty(),
		MainChain:       true,
	}}
	if err := rawdb.WriteBlock(batch, block); err != nil {
		return nil, err
	}
	if err := rawdb.WriteLevel(batch, 0, genesisInfo); err != nil {
		return nil, err
	}
	if err := rawdb.WriteHeadBlockHash(batch, block.Hash()); err != nil {
		return nil, err
	}
	if err := rawdb.WriteBlockStoreHeight(batch, 0); err != nil {
		return nil, err
	}
	if err := rawdb.WriteChainConfig(batch, block.Hash(), config); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, fmt.Errorf("failed to write genesis: %w", err)
	}
	return block, nil
}

// MustCommit writes the genesis block and state to db, panicking on error.
// The block is committed as the canonical head block.
func (g *Genesis) MustCommit(db ethdb.KeyValueStore) *types.Block {
	block, err := g.Commit(db)
	if err != nil {
		panic(err)
	}
	return block
}

// DefaultGenesisBlock returns the main net genesis block.
func DefaultGenesisBlock() *Genesis {
	return &Genesis{
		Config:     params.MainnetChainConfig,
		Timestamp:  1524528000,
		ExtraData:  hexutil.MustDecode("0x756e697479636861696e"),
		Difficulty: new(big.Int).Set(params.GenesisDifficulty),
		Alloc:      GenesisAlloc{},
	}
}

// DeveloperGenesisBlock returns a genesis with the unity fork scheduled at the
// given number and faucet pre-funded.
func DeveloperGenesisBlock(unity uint64, faucet common.Address) *Genesis {
	return &Genesis{
		Config:     params.TestChainConfig.WithFork(params.UnityFork, unity),
		Difficulty: new(big.Int).Set(params.GenesisDifficulty),
		Alloc: GenesisAlloc{
			faucet: {Balance: new(big.Int).Lsh(big.NewInt(1), 128)},
		},
	}
}
