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
package core

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/aionnetwork/unitychain/consensus"
	"github.com/aionnetwork/unitychain/consensus/unity"
	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/aionnetwork/unitychain/core/state"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/aionnetwork/unitychain/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
)

// defaultStakerKey signs the staking blocks of generated chains unless a
// BlockGen picks another key.
var defaultStakerKey, _ = crypto.HexToECDSA("45a915e4d060149eb4365960e6a7a45f334393093061116b197e3240065ff2d8")

// BlockGen creates blocks for testing.
// See GenerateChain for a detailed explanation.
type BlockGen struct {
	i       int
	parent  *types.Block
	chain   []*types.Block
	header  *types.Header
	statedb *state.StateDB

	txs      []*types.Transaction
	receipts []*types.Receipt

	config *params.ChainConfig
	engine consensus.Engine
	reader consensus.ChainHeaderReader
	staker *ecdsa.PrivateKey
}

// SetCoinbase sets the coinbase of the generated block.
func (b *BlockGen) SetCoinbase(addr common.Address) {
	b.header.Coinbase = addr
}

// SetExtra sets the extra data field of the generated block.
func (b *BlockGen) SetExtra(data []byte) {
	b.header.Extra = data
}

// SetStaker sets the key signing the block if it is a staking block.
func (b *BlockGen) SetStaker(key *ecdsa.PrivateKey) {
	b.staker = key
}

// SealType returns the seal type the generated block will carry.
func (b *BlockGen) SealType() types.SealType {
	return b.header.SealType
}

// AddTx adds a transaction to the generated block. The transaction is
// applied immediately, so a nonce mismatch panics here rather than at the end
// of the block.
func (b *BlockGen) AddTx(tx *types.Transaction) {
	receipt, err := ApplyTransaction(b.statedb, tx)
	if err != nil {
		panic(err)
	}
	b.txs = append(b.txs, tx)
	b.receipts = append(b.receipts, receipt)
}

// Number returns the block number of the block being generated.
func (b *BlockGen) Number() *big.Int {
	return new(big.Int).SetUint64(b.header.Number)
}

// TxNonce returns the next valid transaction nonce for the
// account at addr. It panics if the account does not exist.
func (b *BlockGen) TxNonce(addr common.Address) uint64 {
	if !b.statedb.Exist(addr) {
		panic("account does not exist")
	}
	return b.statedb.GetNonce(addr)
}

// PrevBlock returns a previously generated block by number. It panics if
// num is greater or equal to the number of the block being generated.
// For index -1, PrevBlock returns the parent block given to GenerateChain.
func (b *BlockGen) PrevBlock(index int) *types.Block {
	if index >= b.i {
		panic(fmt.Errorf("block index %d out of range (%d,%d)", index, -1, b.i))
	}
	if index == -1 {
		return b.parent
	}
	return b.chain[index]
}

// OffsetTime modifies the time instance of a block, implicitly changing its
// associated difficulty. It's useful to test scenarios where forking is not
// tied to chain length directly.
func (b *BlockGen) OffsetTime(seconds int64) {
	b.header.Time = uint64(int64(b.header.Time) + seconds)
	if b.header.Time <= b.parent.Time() {
		panic("block time out of range")
	}
	if err := b.engine.Prepare(b.reader, b.header); err != nil {
		panic(err)
	}
}

// GenerateChain creates a chain of n blocks. The first block's
// parent will be the provided parent. db is used to store
// intermediate states and should contain the parent's state trie.
//
// The generator function is called with a new block generator for
// every block. Any transactions added to the generator become part of the
// block. If gen is nil, the blocks will be empty and their coinbase will be
// the zero address.
//
// Blocks are sealed with a fake mining nonce or, past the unity fork, every
// other block with a staking signature. Their world states and bodies are
// written to db, but they are not indexed: import them with TryToConnect.
func GenerateChain(config *params.ChainConfig, parent *types.Block, engine consensus.Engine, db ethdb.KeyValueStore, n int, gen func(int, *BlockGen)) ([]*types.Block, []types.Receipts) {
	var (
		blocks     = make(types.Blocks, n)
		receipts   = make([]types.Receipts, n)
		reader     = &chainMakerReader{config: config, db: db}
		stateCache = state.NewDatabase(db, 0)
		processor  = NewStateProcessor(config)
	)
	genblock := func(i int, parent *types.Block) (*types.Block, types.Receipts) {
		statedb, err := state.New(parent.Root(), stateCache)
		if err != nil {
			panic(err)
		}
		b := &BlockGen{i: i, chain: blocks, parent: parent, statedb: statedb, config: config, engine: engine, reader: reader, staker: defaultStakerKey}
		b.header = makeHeader(reader, parent, engine)

		if gen != nil {
			gen(i, b)
		}
		// Execute on a fresh state so that the header carries exactly what
		// an importing node will compute.
		block := types.NewBlock(b.header, b.txs)
		fresh, err := state.New(parent.Root(), stateCache)
		if err != nil {
			panic(err)
		}
		res, err := processor.Process(block, fresh, BlockCachingContext{Kind: PendingContext, CommonAncestor: parent.NumberU64()})
		if err != nil {
			panic(err)
		}
		header := types.HeaderBuilderFrom(block.Header()).
			WithRoot(res.Root).
			WithReceiptHash(res.ReceiptHash).
			Build()

		sealed, err := sealGenerated(reader, header, b.staker)
		if err != nil {
			panic(err)
		}
		block = block.WithSeal(sealed)

		batch := db.NewBatch()
		if _, err := fresh.Commit(batch); err != nil {
			panic(err)
		}
		if err := rawdb.WriteBlock(batch, block); err != nil {
			panic(err)
		}
		if err := batch.Write(); err != nil {
			panic(fmt.Sprintf("block write error: %v", err))
		}
		return block, res.Receipts
	}
	for i := 0; i < n; i++ {
		block, receipt := genblock(i, parent)
		blocks[i] = block
		receipts[i] = receipt
		parent = block
	}
	return blocks, receipts
}

// GenerateChainWithGenesis is a wrapper of GenerateChain which will initialize
// the genesis block into a fresh database. The returned database holds the
// genesis and the generated blocks and states, with only genesis indexed.
func GenerateChainWithGenesis(genesis *Genesis, engine consensus.Engine, n int, gen func(int, *BlockGen)) (ethdb.KeyValueStore, []*types.Block, []types.Receipts) {
	db := rawdb.NewMemoryDatabase()
	block := genesis.MustCommit(db)
	blocks, receipts := GenerateChain(genesis.Config, block, engine, db, n, gen)
	return db, blocks, receipts
}

func makeHeader(chain consensus.ChainHeaderReader, parent *types.Block, engine consensus.Engine) *types.Header {
	header := types.NewHeaderBuilder().
		WithParentHash(parent.Hash()).
		WithCoinbase(parent.Coinbase()).
		WithNumber(parent.NumberU64() + 1).
		WithTime(parent.Time() + 10).
		Build()
	if err := engine.Prepare(chain, header); err != nil {
		panic(err)
	}
	return header
}

// sealGenerated attaches a seal of the prepared type. Mining seals carry a
// nonce that is only accepted by fake engines.
func sealGenerated(chain consensus.ChainHeaderReader, header *types.Header, staker *ecdsa.PrivateKey) (*types.Header, error) {
	if header.SealType == types.SealStaking {
		return unity.SealStaking(chain, header, staker)
	}
	return types.HeaderBuilderFrom(header).
		WithSeal(&types.MiningSeal{Nonce: types.EncodeNonce(header.Number)}).
		Build(), nil
}

// chainMakerReader resolves headers straight from the database generated
// blocks are written to.
type chainMakerReader struct {
	config *params.ChainConfig
	db     ethdb.KeyValueReader
}

func (cr *chainMakerReader) Config() *params.ChainConfig {
	return cr.config
}

func (cr *chainMakerReader) GetHeader(hash common.Hash, number uint64) *types.Header {
	header := rawdb.ReadHeader(cr.db, hash)
	if header == nil || header.Number != number {
		return nil
	}
	return header
}

func (cr *chainMakerReader) GetHeaderByHash(hash common.Hash) *types.Header {
	return rawdb.ReadHeader(cr.db, hash)
}
