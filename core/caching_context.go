// Copyright 2018 The go-ethereum Authors
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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/aionnetwork/unitychain/core/types"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
)

// CachingKind tells the block processor which execution caches can be
// trusted for a block.
type CachingKind uint8

const (
	// MainChainContext: the block extends the head and no fork is pending.
	MainChainContext CachingKind = iota
	// SideChainContext: the block builds on a branch that shares a recent
	// ancestor with the main chain.
	SideChainContext
	// DeepSideChainContext: the branch point lies deeper than the lookback
	// window, caches must not be used.
	DeepSideChainContext
	// SwitchingMainChainContext: the main chain was recently replaced and the
	// caches above the fork level are stale.
	SwitchingMainChainContext
	// PendingContext: the block is a template that is being built locally.
	PendingContext
)

func (k CachingKind) String() string {
	switch k {
	case MainChainContext:
		return "MAINCHAIN"
	case SideChainContext:
		return "SIDECHAIN"
	case DeepSideChainContext:
		return "DEEP_SIDECHAIN"
	case SwitchingMainChainContext:
		return "SWITCHING_MAINCHAIN"
	case PendingContext:
		return "PENDING"
	default:
		return fmt.Sprintf("CachingKind(%d)", uint8(k))
	}
}

// BlockCachingContext is handed to the processor together with a block.
// CommonAncestor is the height below which cached execution data is valid.
type BlockCachingContext struct {
	Kind           CachingKind
	CommonAncestor uint64
}

func (c BlockCachingContext) String() string {
	return fmt.Sprintf("%v@%d", c.Kind, c.CommonAncestor)
}

type headerReader interface {
	GetHeader(hash common.Hash, number uint64) *types.Header
}

// cachingSelector classifies incoming blocks and remembers the level of the
// last main chain switch until a block extends the new head.
type cachingSelector struct {
	lookback uint64

	mu        sync.Mutex
	forked    bool
	forkLevel uint64

	latest atomic.Pointer[BlockCachingContext]
}

func newCachingSelector(lookback uint64) *cachingSelector {
	s := &cachingSelector{lookback: lookback}
	s.latest.Store(&BlockCachingContext{Kind: MainChainContext})
	return s
}

// classify picks the caching context for a block whose parent is known.
func (s *cachingSelector) classify(chain headerReader, parent *types.Header, parentInfo *types.BlockInfo, head *ChainHead) BlockCachingContext {
	if parent.Hash() == head.Hash() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.forked {
			return BlockCachingContext{Kind: SwitchingMainChainContext, CommonAncestor: s.forkLevel}
		}
		return BlockCachingContext{Kind: MainChainContext, CommonAncestor: parent.Number}
	}
	if parentInfo.MainChain {
		return BlockCachingContext{Kind: SideChainContext, CommonAncestor: parent.Number}
	}
	// Collect the recent main chain and look for the branch point of the
	// parent within the same window.
	ancestors := mapset.NewThreadUnsafeSet[common.Hash]()
	for h, i := head.Block.Header(), uint64(0); h != nil && i <= s.lookback; i++ {
		ancestors.Add(h.Hash())
		if h.Number == 0 {
			break
		}
		h = chain.GetHeader(h.ParentHash, h.Number-1)
	}
	for h, i := parent, uint64(0); h != nil && i <= s.lookback; i++ {
		if ancestors.Contains(h.Hash()) {
			return BlockCachingContext{Kind: SideChainContext, CommonAncestor: h.Number}
		}
		if h.Number == 0 {
			break
		}
		h = chain.GetHeader(h.ParentHash, h.Number-1)
	}
	return BlockCachingContext{Kind: DeepSideChainContext}
}

// imported records the outcome of a successful import. A block that extends
// the head without switching branches clears a pending fork level.
func (s *cachingSelector) imported(ctx BlockCachingContext, best bool, reorged bool, ancestor uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case reorged:
		s.forked, s.forkLevel = true, ancestor
		ctx = BlockCachingContext{Kind: SwitchingMainChainContext, CommonAncestor: ancestor}
	case best && ctx.Kind == MainChainContext:
		s.forked = false
	case best && ctx.Kind == SwitchingMainChainContext:
		// The first block on top of the new head still runs with the stale
		// caches, the next one is a regular extension again.
		s.forked = false
	}
	s.latest.Store(&ctx)
}

// switched records a main chain replacement that happened outside of a
// regular import.
func (s *cachingSelector) switched(ancestor uint64) {
	s.imported(BlockCachingContext{}, true, true, ancestor)
}

// Latest returns the context of the most recent import.
func (s *cachingSelector) Latest() BlockCachingContext {
	return *s.latest.Load()
}
