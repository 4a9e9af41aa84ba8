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
// Package state provides a caching layer atop the world state.
package state

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/rlp"
)

// Account is the consensus representation of accounts.
type Account struct {
	Nonce   uint64
	Balance *big.Int
}

// stateObject represents an account which is being modified.
type stateObject struct {
	address common.Address
	data    Account
}

func newObject(address common.Address, data Account) *stateObject {
	if data.Balance == nil {
		data.Balance = new(big.Int)
	}
	return &stateObject{address: address, data: data}
}

func (s *stateObject) setBalance(amount *big.Int) {
	s.data.Balance = amount
}

func (s *stateObject) setNonce(nonce uint64) {
	s.data.Nonce = nonce
}

type revision struct {
	id           int
	journalIndex int
}

// StateDB is an in-memory view of one world state. Modifications never reach
// the store until Commit writes the resulting state into a caller supplied
// batch, which makes discarding a StateDB a complete rollback.
type StateDB struct {
	db           *Database
	originalRoot common.Hash

	stateObjects map[common.Address]*stateObject

	// Journal of state modifications. This is the backbone of
	// Snapshot and RevertToSnapshot.
	journal        *journal
	validRevisions []revision
	nextRevisionId int
}

// New creates a new state from a given root.
func New(root common.Hash, db *Database) (*StateDB, error) {
	enc, err := db.blob(root)
	if err != nil {
		return nil, err
	}
	accounts, err := decodeAccounts(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: root %x: %v", ErrMissingState, root, err)
	}
	sdb := &StateDB{
		db:           db,
		originalRoot: root,
		stateObjects: make(map[common.Address]*stateObject, len(accounts)),
		journal:      newJournal(),
	}
	for _, acc := range accounts {
		sdb.stateObjects[acc.Address] = newObject(acc.Address, acc.Account)
	}
	return sdb, nil
}

// OriginalRoot returns the root the state was opened at.
func (s *StateDB) OriginalRoot() common.Hash {
	return s.originalRoot
}

// Exist reports whether the given account exists in state.
func (s *StateDB) Exist(addr common.Address) bool {
	return s.getStateObject(addr) != nil
}

// GetBalance retrieves the balance from the given address or 0 if object not found
func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if obj := s.getStateObject(addr); obj != nil {
		return new(big.Int).Set(obj.data.Balance)
	}
	return new(big.Int)
}

// GetNonce retrieves the nonce from the given address or 0 if object not found
func (s *StateDB) GetNonce(addr common.Address) uint64 {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.data.Nonce
	}
	return 0
}

// AddBalance adds amount to the account associated with addr.
func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewStateObject(addr)
	s.SetBalance(addr, new(big.Int).Add(obj.data.Balance, amount))
}

// SubBalance subtracts amount from the account associated with addr.
func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewStateObject(addr)
	s.SetBalance(addr, new(big.Int).Sub(obj.data.Balance, amount))
}

// SetBalance sets the balance of the account associated with addr.
func (s *StateDB) SetBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewStateObject(addr)
	s.journal.append(balanceChange{
		account: &obj.address,
		prev:    obj.data.Balance,
	})
	obj.setBalance(new(big.Int).Set(amount))
}

// SetNonce sets the nonce of the account associated with addr.
func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	obj := s.getOrNewStateObject(addr)
	s.journal.append(nonceChange{
		account: &obj.address,
		prev:    obj.data.Nonce,
	})
	obj.setNonce(nonce)
}

func (s *StateDB) getStateObject(addr common.Address) *stateObject {
	return s.stateObjects[addr]
}

func (s *StateDB) getOrNewStateObject(addr common.Address) *stateObject {
	if obj := s.getStateObject(addr); obj != nil {
		return obj
	}
	obj := newObject(addr, Account{})
	s.stateObjects[addr] = obj
	s.journal.append(createObjectChange{account: &obj.address})
	return obj
}

// Snapshot returns an identifier for the current revision of the state.
func (s *StateDB) Snapshot() int {
	id := s.nextRevisionId
	s.nextRevisionId++
	s.validRevisions = append(s.validRevisions, revision{id, s.journal.length()})
	return id
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (s *StateDB) RevertToSnapshot(revid int) {
	// Find the snapshot in the stack of valid snapshots.
	idx := sort.Search(len(s.validRevisions), func(i int) bool {
		return s.validRevisions[i].id >= revid
	})
	if idx == len(s.validRevisions) || s.validRevisions[idx].id != revid {
		panic(fmt.Errorf("revision id %v cannot be reverted", revid))
	}
	snapshot := s.validRevisions[idx].journalIndex

	// Replay the journal to undo changes and remove invalidated snapshots
	s.journal.revert(s, snapshot)
	s.validRevisions = s.validRevisions[:idx]
}

// encode serializes the state as an account list sorted by address.
func (s *StateDB) encode() ([]byte, error) {
	accounts := make([]accountRLP, 0, len(s.stateObjects))
	for addr, obj := range s.stateObjects {
		accounts = append(accounts, accountRLP{Address: addr, Account: obj.data})
	}
	sort.Slice(accounts, func(i, j int) bool {
		return bytes.Compare(accounts[i].Address[:], accounts[j].Address[:]) < 0
	})
	return rlp.EncodeToBytes(accounts)
}

// IntermediateRoot computes the current root hash of the state.
func (s *StateDB) IntermediateRoot() common.Hash {
	enc, err := s.encode()
	if err != nil {
		panic(fmt.Errorf("failed to encode state: %v", err))
	}
	return crypto.Keccak256Hash(enc)
}

// Commit writes the state into w and returns its root. Nothing becomes
// visible until the caller flushes w. The journal is reset, so earlier
// snapshots can no longer be reverted to.
func (s *StateDB) Commit(w ethdb.KeyValueWriter) (common.Hash, error) {
	enc, err := s.encode()
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode state: %w", err)
	}
	root := crypto.Keccak256Hash(enc)
	if err := s.db.write(w, root, enc); err != nil {
		return common.Hash{}, err
	}
	s.journal = newJournal()
	s.validRevisions = s.validRevisions[:0]
	return root, nil
}

// Copy creates a deep, independent copy of the state.
// Snapshots of the copied state cannot be applied to the copy.
func (s *StateDB) Copy() *StateDB {
	state := &StateDB{
		db:           s.db,
		originalRoot: s.originalRoot,
		stateObjects: make(map[common.Address]*stateObject, len(s.stateObjects)),
		journal:      newJournal(),
	}
	for addr, obj := range s.stateObjects {
		state.stateObjects[addr] = newObject(addr, Account{
			Nonce:   obj.data.Nonce,
			Balance: new(big.Int).Set(obj.data.Balance),
		})
	}
	return state
}
