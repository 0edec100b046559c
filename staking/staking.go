// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package staking - move items into and out of per holder escrow
//
// for each (collection, holder) pair the ledger is either unstaked, no
// record, or staked, a record exists and the item's owner is the
// escrow authority of the pair.  Both the record and the ownership
// change are written in the caller's unit of work, so they commit or
// fail together.
package staking

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/signer"
	"github.com/bitmark-inc/stakingd/storage"
)

// Proof - membership credential of the item being moved
type Proof = compression.Proof

// Ledger - the custody switch
type Ledger struct {
	log         *logger.L
	compression compression.Service
	deriver     *derivation.Deriver
}

// New - create a ledger acting as the deriver's program
func New(log *logger.L, svc compression.Service, deriver *derivation.Deriver) *Ledger {
	return &Ledger{
		log:         log,
		compression: svc,
		deriver:     deriver,
	}
}

// Stake - move the proven item of holder into escrow
func (l *Ledger) Stake(trx storage.Transaction, collection *account.Account, holder signer.Signer, proof *Proof) (*Record, *compression.Event, error) {
	if nil == trx || nil == collection || nil == collection.AccountInterface || nil == holder || nil == proof {
		return nil, nil, fault.MissingParameters
	}

	invoker := l.deriver.ProgramId()
	identity := holder.Identity()
	if nil == identity || identity.IsDerived() {
		return nil, nil, fault.Unauthorised
	}
	if err := holder.Authorised(invoker); nil != err {
		return nil, nil, fault.Unauthorised
	}

	key := recordKey(collection, identity)
	if trx.Has(storage.Pool.StakingRecords, key) {
		return nil, nil, fault.AlreadyStaked
	}

	escrow, err := l.deriver.EscrowAuthority(collection, identity)
	if nil != err {
		return nil, nil, err
	}

	if err := l.checkRoot(trx, collection, proof); nil != err {
		return nil, nil, err
	}

	event, err := l.compression.Transfer(trx, invoker, collection, proof, holder, escrow.Address)
	if fault.InvalidProof == err {
		return nil, nil, fault.NotOwner
	}
	if nil != err {
		return nil, nil, err
	}

	record := &Record{
		Owner:    identity,
		Bump:     escrow.Bump,
		Index:    proof.Index,
		Sequence: event.Sequence,
	}
	trx.Put(storage.Pool.StakingRecords, key, record.Pack())

	l.log.Infof("stake: %s  index: %d  holder: %s  escrow: %s", collection, proof.Index, identity, escrow.Address)

	return record, event, nil
}

// Unstake - return the item staked by holder, the caller must be the
// owner recorded at stake time
//
// a nil holder means the caller's own stake
func (l *Ledger) Unstake(trx storage.Transaction, collection *account.Account, holder *account.Account, caller signer.Signer, proof *Proof) (*compression.Event, error) {
	if nil == trx || nil == collection || nil == collection.AccountInterface || nil == caller || nil == proof {
		return nil, fault.MissingParameters
	}

	invoker := l.deriver.ProgramId()
	identity := caller.Identity()
	if nil == identity || identity.IsDerived() {
		return nil, fault.Unauthorised
	}
	if err := caller.Authorised(invoker); nil != err {
		return nil, fault.Unauthorised
	}
	if nil == holder {
		holder = identity
	}
	if nil == holder.AccountInterface {
		return nil, fault.MissingParameters
	}

	key := recordKey(collection, holder)
	record, err := getRecord(trx, key)
	if nil != err {
		return nil, err
	}
	if !record.Owner.Equal(identity) {
		return nil, fault.NotStaker
	}

	escrow, err := l.deriver.EscrowAuthority(collection, record.Owner)
	if nil != err {
		return nil, err
	}
	if escrow.Bump != record.Bump {
		fault.Criticalf("staking: record: %s/%s  bump: %d  derived: %d", collection, holder, record.Bump, escrow.Bump)
		return nil, fault.Unauthorised
	}

	if err := l.checkRoot(trx, collection, proof); nil != err {
		return nil, err
	}

	event, err := l.compression.Transfer(trx, invoker, collection, proof, escrow, record.Owner)
	if fault.InvalidProof == err {
		return nil, fault.NotOwner
	}
	if nil != err {
		return nil, err
	}

	trx.Delete(storage.Pool.StakingRecords, key)

	l.log.Infof("unstake: %s  index: %d  holder: %s", collection, proof.Index, record.Owner)

	return event, nil
}

// Record - the active stake of holder, a nil trx reads committed state
func (l *Ledger) Record(trx storage.Transaction, collection *account.Account, holder *account.Account) (*Record, error) {
	if nil == collection || nil == collection.AccountInterface || nil == holder || nil == holder.AccountInterface {
		return nil, fault.MissingParameters
	}
	return getRecord(trx, recordKey(collection, holder))
}

// Escrow - identity holding the staked item of holder
func (l *Ledger) Escrow(collection *account.Account, holder *account.Account) (*account.Account, error) {
	escrow, err := l.deriver.EscrowAuthority(collection, holder)
	if nil != err {
		return nil, err
	}
	return escrow.Address, nil
}

// the proof must be against the current root
func (l *Ledger) checkRoot(trx storage.Transaction, collection *account.Account, proof *Proof) error {
	root, err := l.compression.Root(trx, collection)
	if fault.AccountNotAllocated == err || fault.NotInitialised == err {
		return fault.CollectionNotFound
	}
	if nil != err {
		return err
	}
	if root != proof.Root {
		return fault.StaleProof
	}
	return nil
}

func getRecord(trx storage.Transaction, key []byte) (*Record, error) {
	var buffer []byte
	if nil == trx {
		buffer = storage.Pool.StakingRecords.Get(key)
	} else {
		buffer = trx.Get(storage.Pool.StakingRecords, key)
	}
	if nil == buffer {
		return nil, fault.NoActiveStake
	}
	record, err := UnpackRecord(buffer)
	if nil != err {
		fault.Criticalf("staking: record: %x  corrupt: %s", key, err)
		return nil, err
	}
	return record, nil
}
