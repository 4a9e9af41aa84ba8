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
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/aionnetwork/unitychain/consensus"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
)

var errWrongSealType = errors.New("header does not expect this seal type")

// Mine searches nonces for a mining seal that meets the header's difficulty.
// The search stops when ctx is cancelled.
func Mine(ctx context.Context, header *types.Header, solution []byte) (*types.Header, error) {
	if header.SealType != types.SealMining {
		return nil, fmt.Errorf("%w: %v", errWrongSealType, header.SealType)
	}
	var (
		sealHash = header.SealHash()
		seal     = &types.MiningSeal{Solution: solution}
		attempts uint64
	)
	for nonce := uint64(0); ; nonce++ {
		if attempts++; attempts%(1<<15) == 0 {
			select {
			case <-ctx.Done():
				log.Debug("Nonce search aborted", "number", header.Number, "attempts", attempts)
				return nil, ctx.Err()
			default:
			}
		}
		seal.Nonce = types.EncodeNonce(nonce)
		if meetsTarget(sealHash, seal, header.Difficulty) {
			log.Trace("Mining seal found", "number", header.Number, "attempts", attempts, "nonce", nonce)
			return types.HeaderBuilderFrom(header).WithSeal(seal).Build(), nil
		}
	}
}

// SealStaking signs a staking header: the signature covers the seal hash and
// the seed is the signature over the previous staking seed.
func SealStaking(chain consensus.ChainHeaderReader, header *types.Header, key *ecdsa.PrivateKey) (*types.Header, error) {
	if header.SealType != types.SealStaking {
		return nil, fmt.Errorf("%w: %v", errWrongSealType, header.SealType)
	}
	if header.Number == 0 {
		return nil, consensus.ErrUnknownAncestor
	}
	parent := chain.GetHeader(header.ParentHash, header.Number-1)
	if parent == nil {
		return nil, consensus.ErrUnknownAncestor
	}
	prevSeed, err := parentStakingSeed(chain, parent)
	if err != nil {
		return nil, err
	}
	seed, err := crypto.Sign(crypto.Keccak256(prevSeed), key)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(header.SealHash().Bytes(), key)
	if err != nil {
		return nil, err
	}
	return types.HeaderBuilderFrom(header).WithSeal(&types.StakingSeal{
		Seed:      seed[:crypto.RecoveryIDOffset],
		Signature: sig,
		PublicKey: crypto.CompressPubkey(&key.PublicKey),
	}).Build(), nil
}
