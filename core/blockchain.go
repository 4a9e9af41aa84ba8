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

// Package core implements the block import pipeline and fork choice of the
// unity chain.
package core

import (
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aionnetwork/unitychain/consensus"
	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/aionnetwork/unitychain/core/state"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/aionnetwork/unitychain/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	lru "github.com/hashicorp/golang-lru"
)

var (
	headBlockGauge = metrics.NewRegisteredGauge("chain/head/block", nil)

	blockInsertTimer    = metrics.NewRegisteredTimer("chain/inserts", nil)
	blockExecutionTimer = metrics.NewRegisteredTimer("chain/execution", nil)
	blockWriteTimer     = metrics.NewRegisteredTimer("chain/write", nil)
	blockInvalidMeter   = metrics.NewRegisteredMeter("chain/invalid", nil)

	blockReorgMeter     = metrics.NewRegisteredMeter("chain/reorg/executes", nil)
	blockReorgAddMeter  = metrics.NewRegisteredMeter("chain/reorg/add", nil)
	blockReorgDropMeter = metrics.NewRegisteredMeter("chain/reorg/drop", nil)
)

const (
	blockCacheLimit = 256
	badBlockLimit   = 10
)

// CacheConfig contains the cache sizes and tunables of a blockchain.
type CacheConfig struct {
	LevelCacheLimit   int           // Number of index levels kept in memory
	BlockCacheLimit   int           // Number of decoded blocks kept in memory
	StateCacheBytes   int           // Size of the clean world state cache
	SideChainLookback uint64        // Depth searched for a branch point when classifying side chain blocks
	ClockDriftBuffer  time.Duration // How far a block timestamp may run ahead of the local clock
}

// DefaultCacheConfig are the cache settings used when none are given.
var DefaultCacheConfig = &CacheConfig{
	LevelCacheLimit:   levelCacheLimit,
	BlockCacheLimit:   blockCacheLimit,
	StateCacheBytes:   16 * 1024 * 1024,
	SideChainLookback: 32,
	ClockDriftBuffer:  time.Duration(params.AllowedFutureBlockTime) * time.Second,
}

// BadBlock is a rejected block together with the reason.
type BadBlock struct {
	Block  *types.Block
	Reason error
}

// BlockChain owns the level index and the published chain head. Every
// mutation of either runs under chainmu; readers use the atomically published
// head and never take the lock.
//
// Blocks of every branch stay in the block store. GetBlockByNumber always
// answers from the main chain, GetBlockByHash from any branch.
type BlockChain struct {
	chainConfig *params.ChainConfig // Chain & network configuration
	cacheConfig *CacheConfig        // Cache configuration

	db           ethdb.KeyValueStore // Low level persistent database
	stateCache   *state.Database     // World state database shared between imports
	index        *LevelIndex
	genesisBlock *types.Block

	chainmu sync.Mutex // serializes imports, rewinds and recovery

	currentHead   atomic.Pointer[ChainHead]
	startingBlock atomic.Pointer[types.Block]
	selector      *cachingSelector

	blockCache *lru.Cache // Cache for the most recent entire blocks
	badBlocks  *lru.Cache // Bad block cache

	chainHeadFeed event.Feed
	chainSideFeed event.Feed
	scope         event.SubscriptionScope

	engine    consensus.Engine
	processor Processor // block processor interface

	now func() time.Time
}

// NewBlockChain returns a fully initialised block chain using information
// available in the database. The level index is checked and the head is
// rewound to the highest main chain block whose world state is available.
func NewBlockChain(db ethdb.KeyValueStore, cacheConfig *CacheConfig, chainConfig *params.ChainConfig, engine consensus.Engine) (*BlockChain, error) {
	if cacheConfig == nil {
		cacheConfig = DefaultCacheConfig
	}
	blockLimit := cacheConfig.BlockCacheLimit
	if blockLimit <= 0 {
		blockLimit = blockCacheLimit
	}
	blockCache, _ := lru.New(blockLimit)
	badBlocks, _ := lru.New(badBlockLimit)

	bc := &BlockChain{
		chainConfig: chainConfig,
		cacheConfig: cacheConfig,
		db:          db,
		stateCache:  state.NewDatabase(db, cacheConfig.StateCacheBytes),
		index:       NewLevelIndex(db, cacheConfig.LevelCacheLimit),
		selector:    newCachingSelector(cacheConfig.SideChainLookback),
		blockCache:  blockCache,
		badBlocks:   badBlocks,
		engine:      engine,
		now:         time.Now,
	}
	bc.processor = NewStateProcessor(chainConfig)

	if !rawdb.HasLevel(db, 0) && rawdb.ReadHeadBlockHash(db) == (common.Hash{}) {
		return nil, ErrNoGenesis
	}
	if err := bc.recover(); err != nil {
		return nil, err
	}
	bc.genesisBlock = bc.GetBlockByNumber(0)
	if bc.genesisBlock == nil {
		return nil, ErrNoGenesis
	}
	return bc, nil
}

// SetProcessor sets the processor required for making state modifications.
func (bc *BlockChain) SetProcessor(processor Processor) {
	bc.chainmu.Lock()
	defer bc.chainmu.Unlock()
	bc.processor = processor
}

// TryToConnect validates, executes and stores a block and runs fork choice.
// Expected failures are reported through the result alone; the error is
// non-nil only if the chain could not read or persist its own data, in which
// case nothing of the import was applied.
func (bc *BlockChain) TryToConnect(block *types.Block) (ImportResult, error) {
	start := time.Now()

	bc.chainmu.Lock()
	result, events, err := bc.tryToConnect(block)
	bc.chainmu.Unlock()

	if err == nil && result.IsSuccessful() {
		blockInsertTimer.UpdateSince(start)
	}
	bc.postChainEvents(events)
	return result, err
}

func (bc *BlockChain) tryToConnect(block *types.Block) (ImportResult, []interface{}, error) {
	var (
		hash   = block.Hash()
		number = block.NumberU64()
	)
	if bc.index.Has(hash, number) {
		log.Debug("Skipping known block", "number", number, "hash", hash)
		return ImportExist, nil, nil
	}
	if limit := bc.now().Add(bc.cacheConfig.ClockDriftBuffer); block.Time() > uint64(limit.Unix()) {
		bc.reportBlock(block, fmt.Errorf("%w: %d > %d", ErrFutureBlock, block.Time(), limit.Unix()))
		return ImportInvalidBlock, nil, nil
	}
	if number == 0 {
		log.Debug("Rejecting foreign genesis", "hash", hash)
		return ImportNoParent, nil, nil
	}
	parentInfo := bc.index.Info(block.ParentHash(), number-1)
	if parentInfo == nil {
		log.Debug("Block has unknown parent", "number", number, "hash", hash, "parent", block.ParentHash())
		return ImportNoParent, nil, nil
	}
	parent := bc.GetBlock(block.ParentHash(), number-1)
	if parent == nil {
		return ImportInvalidBlock, nil, fmt.Errorf("%w: indexed parent %x missing from block store", ErrCorruptIndex, block.ParentHash())
	}
	head := bc.CurrentHead()
	ctx := bc.selector.classify(bc, parent.Header(), parentInfo, head)

	if err := bc.engine.VerifyHeader(bc, block.Header()); err != nil {
		bc.reportBlock(block, err)
		return ImportInvalidBlock, nil, nil
	}
	if have := types.DeriveSha(block.Transactions(), types.NewListHasher()); have != block.TxHash() {
		bc.reportBlock(block, fmt.Errorf("%w: have %x, want %x", ErrTxRootMismatch, have, block.TxHash()))
		return ImportInvalidBlock, nil, nil
	}
	statedb, err := state.New(parent.Root(), bc.stateCache)
	if err != nil {
		return ImportInvalidBlock, nil, fmt.Errorf("parent %d [%x]: %w", number-1, parent.Hash(), err)
	}
	execStart := time.Now()
	res, err := bc.processor.Process(block, statedb, ctx)
	if err != nil {
		bc.reportBlock(block, err)
		return ImportInvalidBlock, nil, nil
	}
	if res.Root != block.Root() {
		bc.reportBlock(block, fmt.Errorf("%w: have %x, want %x", ErrStateRootMismatch, res.Root, block.Root()))
		return ImportInvalidBlock, nil, nil
	}
	if res.ReceiptHash != block.ReceiptHash() {
		bc.reportBlock(block, fmt.Errorf("%w: have %x, want %x", ErrReceiptRootMismatch, res.ReceiptHash, block.ReceiptHash()))
		return ImportInvalidBlock, nil, nil
	}
	blockExecutionTimer.UpdateSince(execStart)

	// Everything below goes into a single batch. If it fails to write, the
	// index cache and the head are still untouched.
	var (
		writeStart = time.Now()
		td         = new(big.Int).Add(parentInfo.TotalDifficulty, block.Difficulty())
		batch      = bc.db.NewBatch()
		ib         = bc.index.newBatch()
		best       = td.Cmp(head.TotalDifficulty) > 0
		reorged    bool
		ancestor   uint64
	)
	if _, err := statedb.Commit(batch); err != nil {
		return ImportInvalidBlock, nil, err
	}
	if err := rawdb.WriteBlock(batch, block); err != nil {
		return ImportInvalidBlock, nil, err
	}
	if height, _ := rawdb.ReadBlockStoreHeight(bc.db); number > height {
		if err := rawdb.WriteBlockStoreHeight(batch, number); err != nil {
			return ImportInvalidBlock, nil, err
		}
	}
	ib.append(number, types.BlockInfo{Hash: hash, TotalDifficulty: td})
	if best {
		if ancestor, err = bc.reorg(ib, head.Block.Header(), block.Header()); err != nil {
			return ImportInvalidBlock, nil, err
		}
		reorged = block.ParentHash() != head.Hash()
		if err := rawdb.WriteHeadBlockHash(batch, hash); err != nil {
			return ImportInvalidBlock, nil, err
		}
	}
	if err := ib.write(batch); err != nil {
		return ImportInvalidBlock, nil, err
	}
	if err := batch.Write(); err != nil {
		log.Error("Failed to write block", "number", number, "hash", hash, "err", err)
		return ImportInvalidBlock, nil, fmt.Errorf("failed to write block %d [%x]: %w", number, hash, err)
	}
	ib.commit()
	bc.blockCache.Add(hash, block)
	blockWriteTimer.UpdateSince(writeStart)

	bc.selector.imported(ctx, best, reorged, ancestor)
	if !best {
		log.Debug("Inserted forked block", "number", number, "hash", hash, "td", td, "context", ctx)
		return ImportedNotBest, []interface{}{ChainSideEvent{Block: block}}, nil
	}
	newHead := &ChainHead{Block: block, TotalDifficulty: td}
	bc.currentHead.Store(newHead)
	headBlockGauge.Update(int64(number))

	log.Info("Imported new chain head", "number", number, "hash", hash, "td", td, "txs", len(block.Transactions()), "context", ctx)
	return ImportedBest, []interface{}{ChainHeadEvent{Block: block, TotalDifficulty: td, Context: bc.selector.Latest()}}, nil
}

// reorg stages the main chain flags for switching from the old head to the
// new one and returns the height of their common ancestor. The new head's own
// record must already be staged in ib.
func (bc *BlockChain) reorg(ib *indexBatch, oldHead, newHead *types.Header) (uint64, error) {
	var (
		oldChain []*types.Header
		newChain []*types.Header
	)
	// Reduce whichever side is higher first.
	for oldHead != nil && oldHead.Number > newHead.Number {
		oldChain = append(oldChain, oldHead)
		oldHead = bc.GetHeader(oldHead.ParentHash, oldHead.Number-1)
	}
	for newHead != nil && oldHead != nil && newHead.Number > oldHead.Number {
		newChain = append(newChain, newHead)
		newHead = bc.GetHeader(newHead.ParentHash, newHead.Number-1)
	}
	for {
		if oldHead == nil {
			return 0, fmt.Errorf("%w: invalid old chain", ErrCorruptIndex)
		}
		if newHead == nil {
			return 0, fmt.Errorf("%w: invalid new chain", ErrCorruptIndex)
		}
		if oldHead.Hash() == newHead.Hash() {
			break
		}
		if oldHead.Number == 0 {
			return 0, fmt.Errorf("%w: chains share no genesis", ErrCorruptIndex)
		}
		oldChain = append(oldChain, oldHead)
		newChain = append(newChain, newHead)
		oldHead = bc.GetHeader(oldHead.ParentHash, oldHead.Number-1)
		newHead = bc.GetHeader(newHead.ParentHash, newHead.Number-1)
	}
	for _, header := range oldChain {
		if !ib.setMainChain(header.Number, header.Hash(), false) {
			return 0, fmt.Errorf("%w: old chain block %x not indexed", ErrCorruptIndex, header.Hash())
		}
	}
	for _, header := range newChain {
		if !ib.setMainChain(header.Number, header.Hash(), true) {
			return 0, fmt.Errorf("%w: new chain block %x not indexed", ErrCorruptIndex, header.Hash())
		}
	}
	if len(oldChain) > 0 {
		log.Info("Chain reorg detected", "number", oldHead.Number, "hash", oldHead.Hash(), "drop", len(oldChain), "add", len(newChain))
		blockReorgMeter.Mark(1)
		blockReorgAddMeter.Mark(int64(len(newChain)))
		blockReorgDropMeter.Mark(int64(len(oldChain)))
	}
	return oldHead.Number, nil
}

// rewind moves the head down to target, which must be on the main chain. The
// records above it stay indexed as side chain blocks.
func (bc *BlockChain) rewind(target *types.Block) error {
	td := bc.index.TotalDifficulty(target.Hash(), target.NumberU64())
	if td == nil {
		return fmt.Errorf("%w: rewind target %x not indexed", ErrCorruptIndex, target.Hash())
	}
	height, _ := rawdb.ReadBlockStoreHeight(bc.db)

	ib := bc.index.newBatch()
	for number := target.NumberU64() + 1; number <= height; number++ {
		for _, info := range bc.index.Get(number) {
			if info.MainChain {
				ib.setMainChain(number, info.Hash, false)
			}
		}
	}
	batch := bc.db.NewBatch()
	if err := ib.write(batch); err != nil {
		return err
	}
	if err := rawdb.WriteHeadBlockHash(batch, target.Hash()); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to rewind head: %w", err)
	}
	ib.commit()

	bc.currentHead.Store(&ChainHead{Block: target, TotalDifficulty: td})
	bc.selector.switched(target.NumberU64())
	headBlockGauge.Update(int64(target.NumberU64()))
	return nil
}

// SetHead rewinds the head to the main chain block at the given height. Blocks
// above it are kept as side chain blocks and can become the head again.
func (bc *BlockChain) SetHead(number uint64) error {
	bc.chainmu.Lock()
	defer bc.chainmu.Unlock()

	head := bc.CurrentHead()
	if number > head.Number() {
		return fmt.Errorf("%w: rewind to %d above head %d", ErrBlockNumberMismatch, number, head.Number())
	}
	if number == head.Number() {
		return nil
	}
	target := bc.GetBlockByNumber(number)
	if target == nil {
		return fmt.Errorf("%w: no main chain block at %d", ErrCorruptIndex, number)
	}
	if !bc.HasState(target.Root()) {
		return fmt.Errorf("block %d [%x]: %w", number, target.Hash(), ErrMissingState)
	}
	log.Warn("Rewinding blockchain", "from", head.Number(), "to", number, "hash", target.Hash())
	return bc.rewind(target)
}

// reportBlock logs a rejected block and remembers it.
func (bc *BlockChain) reportBlock(block *types.Block, err error) {
	blockInvalidMeter.Mark(1)
	bc.badBlocks.Add(block.Hash(), &BadBlock{Block: block, Reason: err})
	log.Warn("Rejected invalid block", "number", block.NumberU64(), "hash", block.Hash(), "seal", block.SealType(), "err", err)
}

// BadBlocks returns the most recently rejected blocks.
func (bc *BlockChain) BadBlocks() []*BadBlock {
	blocks := make([]*BadBlock, 0, bc.badBlocks.Len())
	for _, hash := range bc.badBlocks.Keys() {
		if bad, ok := bc.badBlocks.Peek(hash); ok {
			blocks = append(blocks, bad.(*BadBlock))
		}
	}
	return blocks
}

// postChainEvents sends the events of an import to the subscribers.
func (bc *BlockChain) postChainEvents(events []interface{}) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case ChainHeadEvent:
			bc.chainHeadFeed.Send(ev)
		case ChainSideEvent:
			bc.chainSideFeed.Send(ev)
		}
	}
}

// Stop unsubscribes every event subscriber.
func (bc *BlockChain) Stop() {
	bc.scope.Close()
	log.Info("Blockchain stopped")
}

// Config retrieves the blockchain's chain configuration.
func (bc *BlockChain) Config() *params.ChainConfig { return bc.chainConfig }

// Engine retrieves the blockchain's consensus engine.
func (bc *BlockChain) Engine() consensus.Engine { return bc.engine }

// Genesis retrieves the chain's genesis block.
func (bc *BlockChain) Genesis() *types.Block { return bc.genesisBlock }

// CurrentHead retrieves the published head together with its total difficulty.
func (bc *BlockChain) CurrentHead() *ChainHead { return bc.currentHead.Load() }

// CurrentBlock retrieves the current head block of the canonical chain.
func (bc *BlockChain) CurrentBlock() *types.Block { return bc.CurrentHead().Block }

// GetBestBlockHash returns the hash of the current head block.
func (bc *BlockChain) GetBestBlockHash() common.Hash { return bc.CurrentHead().Hash() }

// GetTotalDifficulty returns the total difficulty of the current head.
func (bc *BlockChain) GetTotalDifficulty() *big.Int {
	return new(big.Int).Set(bc.CurrentHead().TotalDifficulty)
}

// Size returns the number of blocks on the main chain, genesis included.
func (bc *BlockChain) Size() uint64 { return bc.CurrentHead().Number() + 1 }

// StartingBlock returns the block the chain resumed from after recovery.
func (bc *BlockChain) StartingBlock() *types.Block { return bc.startingBlock.Load() }

// GetCachingContext returns the caching context of the most recent import.
func (bc *BlockChain) GetCachingContext() BlockCachingContext { return bc.selector.Latest() }

// GetTd retrieves a block's total difficulty from the level index.
func (bc *BlockChain) GetTd(hash common.Hash, number uint64) *big.Int {
	return bc.index.TotalDifficulty(hash, number)
}

// GetTotalDifficultyForHash retrieves the total difficulty of any stored block.
func (bc *BlockChain) GetTotalDifficultyForHash(hash common.Hash) *big.Int {
	header := bc.GetHeaderByHash(hash)
	if header == nil {
		return nil
	}
	return bc.GetTd(hash, header.Number)
}

// IsBlockStored reports whether a block is indexed at the given height.
func (bc *BlockChain) IsBlockStored(hash common.Hash, number uint64) bool {
	return bc.index.Has(hash, number)
}

// HasState checks if the world state of root is fully present in the database.
func (bc *BlockChain) HasState(root common.Hash) bool {
	return bc.stateCache.HasState(root)
}

// State returns a new mutable state based on the current head block.
func (bc *BlockChain) State() (*state.StateDB, error) {
	return bc.StateAt(bc.CurrentBlock().Root())
}

// StateAt returns a new mutable state based on a particular point in time.
func (bc *BlockChain) StateAt(root common.Hash) (*state.StateDB, error) {
	return state.New(root, bc.stateCache)
}

// GetBlockByHash retrieves a block of any branch by hash, caching it if found.
func (bc *BlockChain) GetBlockByHash(hash common.Hash) *types.Block {
	if block, ok := bc.blockCache.Get(hash); ok {
		return block.(*types.Block)
	}
	block := rawdb.ReadBlock(bc.db, hash)
	if block == nil {
		return nil
	}
	bc.blockCache.Add(hash, block)
	return block
}

// GetBlock retrieves a block by hash and number.
func (bc *BlockChain) GetBlock(hash common.Hash, number uint64) *types.Block {
	block := bc.GetBlockByHash(hash)
	if block == nil || block.NumberU64() != number {
		return nil
	}
	return block
}

// GetHeader retrieves a block header by hash and number.
func (bc *BlockChain) GetHeader(hash common.Hash, number uint64) *types.Header {
	if block := bc.GetBlock(hash, number); block != nil {
		return block.Header()
	}
	return nil
}

// GetHeaderByHash retrieves a block header by hash.
func (bc *BlockChain) GetHeaderByHash(hash common.Hash) *types.Header {
	if block := bc.GetBlockByHash(hash); block != nil {
		return block.Header()
	}
	return nil
}

// GetBlockByNumber retrieves the main chain block at the given height.
func (bc *BlockChain) GetBlockByNumber(number uint64) *types.Block {
	if head := bc.CurrentHead(); head != nil && number > head.Number() {
		return nil
	}
	hash, ok := bc.index.MainChainHash(number)
	if !ok {
		return nil
	}
	return bc.GetBlock(hash, number)
}

// GetBlocksByNumber retrieves every stored block at the given height, main
// chain block first.
func (bc *BlockChain) GetBlocksByNumber(number uint64) []*types.Block {
	var blocks []*types.Block
	for _, info := range bc.index.Get(number) {
		block := bc.GetBlock(info.Hash, number)
		if block == nil {
			continue
		}
		if info.MainChain {
			blocks = append([]*types.Block{block}, blocks...)
		} else {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// GetBlockHashesFromHash retrieves a number of block hashes starting at a
// given hash, fetching towards the genesis block.
func (bc *BlockChain) GetBlockHashesFromHash(hash common.Hash, max uint64) []common.Hash {
	header := bc.GetHeaderByHash(hash)
	if header == nil {
		return nil
	}
	chain := make([]common.Hash, 0, max)
	for i := uint64(0); i < max && header.Number > 0; i++ {
		next := header.ParentHash
		if header = bc.GetHeader(next, header.Number-1); header == nil {
			break
		}
		chain = append(chain, next)
	}
	return chain
}

// FindMissingAncestor walks the stored ancestry of block and returns the hash
// and height of the first ancestor that is not indexed. It reports false if
// the block connects to the index.
func (bc *BlockChain) FindMissingAncestor(block *types.Block) (common.Hash, uint64, bool) {
	header := block.Header()
	for header.Number > 0 {
		parent, number := header.ParentHash, header.Number-1
		if bc.index.Has(parent, number) {
			return common.Hash{}, 0, false
		}
		if header = bc.GetHeader(parent, number); header == nil {
			return parent, number, true
		}
	}
	return common.Hash{}, 0, false
}

// IndexIntegrityCheck verifies the level index against the block store and
// corrects inconsistent total difficulties.
func (bc *BlockChain) IndexIntegrityCheck() (IntegrityCheckResult, error) {
	bc.chainmu.Lock()
	defer bc.chainmu.Unlock()

	height, _ := rawdb.ReadBlockStoreHeight(bc.db)
	result, err := bc.index.IntegrityCheck(height)
	if err != nil {
		return result, err
	}
	if result == IntegrityFixed {
		head := bc.CurrentHead()
		if td := bc.index.TotalDifficulty(head.Hash(), head.Number()); td != nil {
			bc.currentHead.Store(&ChainHead{Block: head.Block, TotalDifficulty: td})
		}
	}
	return result, nil
}

// SubscribeChainHeadEvent registers a subscription of ChainHeadEvent.
func (bc *BlockChain) SubscribeChainHeadEvent(ch chan<- ChainHeadEvent) event.Subscription {
	return bc.scope.Track(bc.chainHeadFeed.Subscribe(ch))
}

// SubscribeChainSideEvent registers a subscription of ChainSideEvent.
func (bc *BlockChain) SubscribeChainSideEvent(ch chan<- ChainSideEvent) event.Subscription {
	return bc.scope.Track(bc.chainSideFeed.Subscribe(ch))
}
