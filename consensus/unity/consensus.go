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
package unity

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/aionnetwork/unitychain/consensus"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/aionnetwork/unitychain/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var errOlderBlockTime = errors.New("timestamp older than parent")

// two256 is a big integer representing 2^256
var two256 = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), big.NewInt(0))

// VerifyHeader checks whether a header conforms to the consensus rules of the
// unity engine.
func (u *Unity) VerifyHeader(chain consensus.ChainHeaderReader, header *types.Header) error {
	// If we're running a full engine faking, accept any input as valid
	if u.mode == ModeFullFake {
		return nil
	}
	if header.Number == 0 {
		return consensus.ErrUnknownAncestor
	}
	parent := chain.GetHeader(header.ParentHash, header.Number-1)
	if parent == nil {
		return consensus.ErrUnknownAncestor
	}
	return u.verifyHeader(chain, header, parent, u.now().Unix())
}

// verifyHeader checks whether a header conforms to the consensus rules of the
// unity engine.
func (u *Unity) verifyHeader(chain consensus.ChainHeaderReader, header, parent *types.Header, unixNow int64) error {
	if err := header.SanityCheck(); err != nil {
		return err
	}
	// Ensure that the header's extra-data section is of a reasonable size
	if uint64(len(header.Extra)) > params.MaximumExtraDataSize {
		return fmt.Errorf("extra-data too long: %d > %d", len(header.Extra), params.MaximumExtraDataSize)
	}
	// Verify the header's timestamp
	if header.Time > uint64(unixNow)+params.AllowedFutureBlockTime {
		return consensus.ErrFutureBlock
	}
	if header.Time <= parent.Time {
		return errOlderBlockTime
	}
	// Verify that the block number is parent's +1
	if header.Number != parent.Number+1 {
		return consensus.ErrInvalidNumber
	}
	// Verify the seal type follows the alternation rule
	if want := ExpectedSealType(chain.Config(), parent); header.SealType != want {
		return fmt.Errorf("%w: have %v, want %v", consensus.ErrInvalidSealType, header.SealType, want)
	}
	// Verify the block's difficulty based on its seal type and the nearest
	// ancestor of the same type
	expected := u.CalcDifficulty(chain, header.Time, parent, header.SealType)
	if expected.Cmp(header.Difficulty) != 0 {
		return fmt.Errorf("%w: have %v, want %v", consensus.ErrInvalidDifficulty, header.Difficulty, expected)
	}
	// Add some fake checks for tests
	if u.fakeDelay != nil {
		time.Sleep(*u.fakeDelay)
	}
	if u.fakeFail != nil && *u.fakeFail == header.Number {
		return errors.New("invalid tester seal")
	}
	return u.verifySeal(chain, header, parent)
}

// verifySeal checks the proof attached to a header.
func (u *Unity) verifySeal(chain consensus.ChainHeaderReader, header, parent *types.Header) error {
	if header.Seal == nil {
		return consensus.ErrMissingSeal
	}
	switch seal := header.Seal.(type) {
	case *types.MiningSeal:
		if u.mode == ModeFake {
			return nil
		}
		if !meetsTarget(header.SealHash(), seal, header.Difficulty) {
			return consensus.ErrInvalidPoW
		}
		return nil

	case *types.StakingSeal:
		if len(seal.Signature) != crypto.SignatureLength {
			return fmt.Errorf("%w: length %d", consensus.ErrInvalidStakeSignature, len(seal.Signature))
		}
		if !crypto.VerifySignature(seal.PublicKey, header.SealHash().Bytes(), seal.Signature[:crypto.RecoveryIDOffset]) {
			return consensus.ErrInvalidStakeSignature
		}
		prevSeed, err := parentStakingSeed(chain, parent)
		if err != nil {
			return err
		}
		if len(seal.Seed) != params.StakingSeedLength {
			return fmt.Errorf("%w: length %d", consensus.ErrInvalidSeed, len(seal.Seed))
		}
		if !crypto.VerifySignature(seal.PublicKey, crypto.Keccak256(prevSeed), seal.Seed) {
			return consensus.ErrInvalidSeed
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown seal %T", consensus.ErrInvalidSealType, header.Seal)
	}
}

// Prepare implements consensus.Engine, initializing the seal type and the
// difficulty field of a header to conform to the unity protocol.
func (u *Unity) Prepare(chain consensus.ChainHeaderReader, header *types.Header) error {
	if header.Number == 0 {
		return consensus.ErrUnknownAncestor
	}
	parent := chain.GetHeader(header.ParentHash, header.Number-1)
	if parent == nil {
		return consensus.ErrUnknownAncestor
	}
	header.SealType = ExpectedSealType(chain.Config(), parent)
	header.Difficulty = u.CalcDifficulty(chain, header.Time, parent, header.SealType)
	return nil
}

// ExpectedSealType returns the seal type the child of parent must carry.
// Before the unity fork every block is mined; afterwards the type alternates.
func ExpectedSealType(config *params.ChainConfig, parent *types.Header) types.SealType {
	if !config.IsUnity(parent.Number + 1) {
		return types.SealMining
	}
	return parent.SealType.Opposite()
}

// meetsTarget reports whether keccak(sealHash || nonce || solution) is below
// 2^256/difficulty.
func meetsTarget(sealHash common.Hash, seal *types.MiningSeal, difficulty *big.Int) bool {
	if difficulty == nil || difficulty.Sign() <= 0 {
		return false
	}
	target := new(big.Int).Div(two256, difficulty)
	result := crypto.Keccak256(sealHash.Bytes(), seal.Nonce[:], seal.Solution)
	return new(big.Int).SetBytes(result).Cmp(target) <= 0
}

// parentStakingSeed returns the seed of the nearest staking ancestor of
// a staking block whose parent is given, or the genesis seed if there is none.
func parentStakingSeed(chain consensus.ChainHeaderReader, parent *types.Header) ([]byte, error) {
	anchor, err := sealAncestor(chain, parent, types.SealStaking)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		return params.GenesisStakingSeed, nil
	}
	return anchor.StakingSeal().Seed, nil
}

// sealAncestor walks back from header (inclusive) to the nearest header of the
// given seal type. It returns nil if no such header exists: staking headers are
// never searched for below the unity fork.
func sealAncestor(chain consensus.ChainHeaderReader, header *types.Header, sealType types.SealType) (*types.Header, error) {
	config := chain.Config()
	for h := header; ; {
		if h.SealType == sealType {
			if sealType == types.SealStaking && h.StakingSeal() == nil {
				return nil, fmt.Errorf("%w: staking ancestor %d without seal", consensus.ErrInvalidSeed, h.Number)
			}
			return h, nil
		}
		if h.Number == 0 || (sealType == types.SealStaking && !config.IsUnity(h.Number)) {
			return nil, nil
		}
		parent := chain.GetHeader(h.ParentHash, h.Number-1)
		if parent == nil {
			return nil, consensus.ErrUnknownAncestor
		}
		h = parent
	}
}
