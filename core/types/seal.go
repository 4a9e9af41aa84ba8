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

package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	errUnknownSealType  = errors.New("unknown seal type")
	errSealTypeMismatch = errors.New("seal does not match header seal type")
)

// SealType identifies how a block was produced.
type SealType uint8

const (
	SealMining  SealType = 1 // proof-of-work nonce and solution
	SealStaking SealType = 2 // stake signature and seed
)

func (t SealType) String() string {
	switch t {
	case SealMining:
		return "mining"
	case SealStaking:
		return "staking"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Opposite returns the seal type a hybrid block following t must carry.
func (t SealType) Opposite() SealType {
	if t == SealStaking {
		return SealMining
	}
	return SealStaking
}

// A BlockNonce is a 64-bit hash which proves (combined with the
// solution) that a sufficient amount of computation has been carried
// out on a block.
type BlockNonce [8]byte

// EncodeNonce converts the given integer to a block nonce.
func EncodeNonce(i uint64) BlockNonce {
	var n BlockNonce
	binary.BigEndian.PutUint64(n[:], i)
	return n
}

// Uint64 returns the integer value of a block nonce.
func (n BlockNonce) Uint64() uint64 {
	return binary.BigEndian.Uint64(n[:])
}

// MarshalText encodes n as a hex string with 0x prefix.
func (n BlockNonce) MarshalText() ([]byte, error) {
	return hexutil.Bytes(n[:]).MarshalText()
}

// Seal is the proof attached to a header. It is a closed tagged variant:
// the only implementations are *MiningSeal and *StakingSeal.
type Seal interface {
	Type() SealType
	copy() Seal
	encode() ([]byte, error)
}

// MiningSeal proves work over the header's seal hash.
type MiningSeal struct {
	Nonce    BlockNonce
	Solution []byte
}

func (s *MiningSeal) Type() SealType { return SealMining }

func (s *MiningSeal) copy() Seal {
	return &MiningSeal{Nonce: s.Nonce, Solution: common.CopyBytes(s.Solution)}
}

func (s *MiningSeal) encode() ([]byte, error) { return rlp.EncodeToBytes(s) }

// StakingSeal carries the staker's signature over the header's seal hash and
// the seed, which is the staker's signature over the previous staking seed.
type StakingSeal struct {
	Seed      []byte
	Signature []byte
	PublicKey []byte
}

func (s *StakingSeal) Type() SealType { return SealStaking }

func (s *StakingSeal) copy() Seal {
	return &StakingSeal{
		Seed:      common.CopyBytes(s.Seed),
		Signature: common.CopyBytes(s.Signature),
		PublicKey: common.CopyBytes(s.PublicKey),
	}
}

func (s *StakingSeal) encode() ([]byte, error) { return rlp.EncodeToBytes(s) }

// encodeSeal returns the RLP payload of a seal. An absent seal encodes as an
// empty string so unsealed headers still have a stable encoding.
func encodeSeal(s Seal) (rlp.RawValue, error) {
	if s == nil {
		return rlp.RawValue{0x80}, nil
	}
	return s.encode()
}

func decodeSeal(t SealType, payload rlp.RawValue) (Seal, error) {
	if bytes.Equal(payload, []byte{0x80}) {
		return nil, nil
	}
	switch t {
	case SealMining:
		s := new(MiningSeal)
		if err := rlp.DecodeBytes(payload, s); err != nil {
			return nil, err
		}
		return s, nil
	case SealStaking:
		s := new(StakingSeal)
		if err := rlp.DecodeBytes(payload, s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnknownSealType, t)
	}
}
