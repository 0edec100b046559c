// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staking_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/compression/mocks"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/fixtures"
	"github.com/bitmark-inc/stakingd/keypair"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/signer"
	"github.com/bitmark-inc/stakingd/staking"
	"github.com/bitmark-inc/stakingd/storage"
)

var programId = derivation.ProgramIdFromName("staking")

type env struct {
	ctl        *gomock.Controller
	svc        *mocks.MockService
	ledger     *staking.Ledger
	deriver    *derivation.Deriver
	collection *account.Account
	root       merkle.Digest
}

func setup(t *testing.T) *env {
	err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database setup error: %s", err)
	}
	ctl := gomock.NewController(t)
	svc := mocks.NewMockService(ctl)
	deriver := derivation.New(programId, true)
	return &env{
		ctl:        ctl,
		svc:        svc,
		ledger:     staking.New(logger.New(fixtures.LogCategory), svc, deriver),
		deriver:    deriver,
		collection: newKey(t).Identity(),
		root:       merkle.NewDigest([]byte("root")),
	}
}

func (e *env) teardown() {
	e.ctl.Finish()
	fixtures.TeardownTestDatabase()
}

func newKey(t *testing.T) *signer.Key {
	kp, err := keypair.MakeKeyPair(true)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	key, _, err := signer.Sign(kp.PrivateKey, []byte("request"))
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return key
}

func begin(t *testing.T) storage.Transaction {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	return trx
}

func (e *env) proof(index uint32) *staking.Proof {
	return &staking.Proof{
		Root:        e.root,
		DataHash:    merkle.NewDigest([]byte("data")),
		CreatorHash: merkle.NewDigest([]byte("creator")),
		Nonce:       uint64(index),
		Index:       index,
		Path:        make([]merkle.Digest, 3),
	}
}

// a committed stake of holder's item at index
func (e *env) stake(t *testing.T, holder *signer.Key, index uint32, sequence uint64) {
	escrow, _ := e.deriver.EscrowAuthority(e.collection, holder.Identity())

	trx := begin(t)
	defer trx.Abort()

	proof := e.proof(index)
	e.svc.EXPECT().Root(trx, e.collection).Return(e.root, nil)
	e.svc.EXPECT().Transfer(trx, programId, e.collection, proof, holder, escrow.Address).
		Return(&compression.Event{Kind: compression.EventTransfer, Sequence: sequence}, nil)

	record, event, err := e.ledger.Stake(trx, e.collection, holder, proof)
	if nil != err {
		t.Fatalf("stake error: %s", err)
	}
	assert.Equal(t, sequence, event.Sequence, "event sequence")
	assert.Equal(t, sequence, record.Sequence, "record sequence")
	assert.Nil(t, trx.Commit(), "commit")
}

func TestStake(t *testing.T) {
	e := setup(t)
	defer e.teardown()

	holder := newKey(t)
	_, err := e.ledger.Record(nil, e.collection, holder.Identity())
	assert.Equal(t, fault.NoActiveStake, err, "record before stake")

	e.stake(t, holder, 4, 9)

	record, err := e.ledger.Record(nil, e.collection, holder.Identity())
	if nil != err {
		t.Fatalf("record error: %s", err)
	}
	escrow, _ := e.deriver.EscrowAuthority(e.collection, holder.Identity())
	assert.True(t, holder.Identity().Equal(record.Owner), "record owner")
	assert.Equal(t, escrow.Bump, record.Bump, "record bump")
	assert.Equal(t, uint32(4), record.Index, "record index")
	assert.Equal(t, uint64(9), record.Sequence, "record sequence")

	address, err := e.ledger.Escrow(e.collection, holder.Identity())
	assert.Nil(t, err, "escrow")
	assert.True(t, escrow.Address.Equal(address), "escrow address")
}

func TestStakeErrors(t *testing.T) {
	e := setup(t)
	defer e.teardown()

	holder := newKey(t)
	escrow, _ := e.deriver.EscrowAuthority(e.collection, holder.Identity())

	trx := begin(t)
	defer trx.Abort()

	proof := e.proof(0)

	// no collaborator calls for unauthorised holders
	_, _, err := e.ledger.Stake(trx, e.collection, signer.Unverified(holder.Identity()), proof)
	assert.Equal(t, fault.Unauthorised, err, "unsigned holder")

	treeAuthority, _ := e.deriver.TreeAuthority(e.collection)
	_, _, err = e.ledger.Stake(trx, e.collection, treeAuthority, proof)
	assert.Equal(t, fault.Unauthorised, err, "derived holder")

	_, _, err = e.ledger.Stake(trx, e.collection, holder, nil)
	assert.Equal(t, fault.MissingParameters, err, "missing proof")

	// stale root stops before the transfer
	e.svc.EXPECT().Root(trx, e.collection).Return(merkle.NewDigest([]byte("newer")), nil)
	_, _, err = e.ledger.Stake(trx, e.collection, holder, proof)
	assert.Equal(t, fault.StaleProof, err, "stale root")

	// leaf does not prove with holder as owner
	e.svc.EXPECT().Root(trx, e.collection).Return(e.root, nil)
	e.svc.EXPECT().Transfer(trx, programId, e.collection, proof, holder, escrow.Address).Return(nil, fault.InvalidProof)
	_, _, err = e.ledger.Stake(trx, e.collection, holder, proof)
	assert.Equal(t, fault.NotOwner, err, "not owner")

	// other collaborator errors pass through
	e.svc.EXPECT().Root(trx, e.collection).Return(e.root, nil)
	e.svc.EXPECT().Transfer(trx, programId, e.collection, proof, holder, escrow.Address).Return(nil, fault.InvalidLeafIndex)
	_, _, err = e.ledger.Stake(trx, e.collection, holder, proof)
	assert.Equal(t, fault.InvalidLeafIndex, err, "invalid index")

	e.svc.EXPECT().Root(trx, e.collection).Return(merkle.Digest{}, fault.AccountNotAllocated)
	_, _, err = e.ledger.Stake(trx, e.collection, holder, proof)
	assert.Equal(t, fault.CollectionNotFound, err, "unknown collection")

	// none of the failures wrote a record
	_, err = e.ledger.Record(trx, e.collection, holder.Identity())
	assert.Equal(t, fault.NoActiveStake, err, "record after failures")
}

func TestStakeTwice(t *testing.T) {
	e := setup(t)
	defer e.teardown()

	holder := newKey(t)
	e.stake(t, holder, 0, 1)

	trx := begin(t)
	defer trx.Abort()

	// refused before the collaborator is consulted
	_, _, err := e.ledger.Stake(trx, e.collection, holder, e.proof(0))
	assert.Equal(t, fault.AlreadyStaked, err, "second stake")

	record, err := e.ledger.Record(trx, e.collection, holder.Identity())
	assert.Nil(t, err, "record")
	assert.Equal(t, uint64(1), record.Sequence, "first stake changed")
}

func TestUnstake(t *testing.T) {
	e := setup(t)
	defer e.teardown()

	holder := newKey(t)
	e.stake(t, holder, 2, 3)
	escrow, _ := e.deriver.EscrowAuthority(e.collection, holder.Identity())

	trx := begin(t)
	defer trx.Abort()

	proof := e.proof(2)
	e.svc.EXPECT().Root(trx, e.collection).Return(e.root, nil)
	e.svc.EXPECT().Transfer(trx, programId, e.collection, proof, escrow, holder.Identity()).
		Return(&compression.Event{Kind: compression.EventTransfer, Sequence: 4}, nil)

	event, err := e.ledger.Unstake(trx, e.collection, nil, holder, proof)
	if nil != err {
		t.Fatalf("unstake error: %s", err)
	}
	assert.Equal(t, uint64(4), event.Sequence, "event sequence")

	_, err = e.ledger.Record(trx, e.collection, holder.Identity())
	assert.Equal(t, fault.NoActiveStake, err, "pending record")

	// committed state still has the record until commit
	_, err = e.ledger.Record(nil, e.collection, holder.Identity())
	assert.Nil(t, err, "committed record")

	assert.Nil(t, trx.Commit(), "commit")
	_, err = e.ledger.Record(nil, e.collection, holder.Identity())
	assert.Equal(t, fault.NoActiveStake, err, "record after unstake")
}

func TestUnstakeErrors(t *testing.T) {
	e := setup(t)
	defer e.teardown()

	holder := newKey(t)
	other := newKey(t)
	e.stake(t, holder, 0, 1)
	escrow, _ := e.deriver.EscrowAuthority(e.collection, holder.Identity())

	trx := begin(t)
	defer trx.Abort()

	proof := e.proof(0)

	_, err := e.ledger.Unstake(trx, e.collection, nil, other, proof)
	assert.Equal(t, fault.NoActiveStake, err, "caller never staked")

	_, err = e.ledger.Unstake(trx, e.collection, holder.Identity(), other, proof)
	assert.Equal(t, fault.NotStaker, err, "other caller")

	_, err = e.ledger.Unstake(trx, e.collection, nil, signer.Unverified(holder.Identity()), proof)
	assert.Equal(t, fault.Unauthorised, err, "unsigned caller")

	e.svc.EXPECT().Root(trx, e.collection).Return(merkle.NewDigest([]byte("newer")), nil)
	_, err = e.ledger.Unstake(trx, e.collection, nil, holder, proof)
	assert.Equal(t, fault.StaleProof, err, "stale root")

	e.svc.EXPECT().Root(trx, e.collection).Return(e.root, nil)
	e.svc.EXPECT().Transfer(trx, programId, e.collection, proof, escrow, holder.Identity()).Return(nil, fault.InvalidProof)
	_, err = e.ledger.Unstake(trx, e.collection, nil, holder, proof)
	assert.Equal(t, fault.NotOwner, err, "item not in escrow")

	record, err := e.ledger.Record(trx, e.collection, holder.Identity())
	assert.Nil(t, err, "record removed by failure")
	assert.True(t, holder.Identity().Equal(record.Owner), "record owner")
}

func TestRecordPacking(t *testing.T) {
	record := &staking.Record{
		Owner:    newKey(t).Identity(),
		Bump:     253,
		Index:    16383,
		Sequence: 1 << 40,
	}
	buffer := record.Pack()

	decoded, err := staking.UnpackRecord(buffer)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	assert.True(t, record.Owner.Equal(decoded.Owner), "owner")
	assert.Equal(t, record.Bump, decoded.Bump, "bump")
	assert.Equal(t, record.Index, decoded.Index, "index")
	assert.Equal(t, record.Sequence, decoded.Sequence, "sequence")

	_, err = staking.UnpackRecord(buffer[:len(buffer)-1])
	assert.Equal(t, fault.TruncatedRecord, err, "short record")

	buffer[0] ^= 0xff
	_, err = staking.UnpackRecord(buffer)
	assert.Equal(t, fault.InvalidItem, err, "wrong tag")
}
