// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/fixtures"
	"github.com/bitmark-inc/stakingd/indexer"
	"github.com/bitmark-inc/stakingd/keypair"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/messagebus"
	"github.com/bitmark-inc/stakingd/metadata"
	"github.com/bitmark-inc/stakingd/program"
	"github.com/bitmark-inc/stakingd/signer"
)

func setup(t *testing.T, override *metadata.Override) *program.Program {
	err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database setup error: %s", err)
	}
	log := logger.New(fixtures.LogCategory)
	svc := compression.New(log, true)
	deriver := derivation.New(derivation.ProgramIdFromName("staking"), true)
	index := indexer.New(log, messagebus.New(0))
	return program.New(log, svc, deriver, index, index, override)
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

func create(t *testing.T, p *program.Program, maxDepth uint32, maxBufferSize uint32) *account.Account {
	tree := newKey(t)
	ref, err := p.CreateCollection(newKey(t), tree, maxDepth, maxBufferSize)
	if nil != err {
		t.Fatalf("create collection error: %s", err)
	}
	assert.True(t, tree.Identity().Equal(ref.Tree), "collection tree")
	return ref.Tree
}

func issue(t *testing.T, p *program.Program, collection *account.Account, holder *account.Account) uint32 {
	ref, err := p.IssueItem(collection, holder)
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}
	return ref.Index
}

func proof(t *testing.T, p *program.Program, collection *account.Account, index uint32) (*compression.Proof, *account.Account) {
	item, err := p.ItemProof(collection, index)
	if nil != err {
		t.Fatalf("item proof error: %s", err)
	}
	return item.Proof, item.Leaf.Owner
}

func root(t *testing.T, p *program.Program, collection *account.Account) merkle.Digest {
	info, err := p.Collection(collection)
	if nil != err {
		t.Fatalf("collection info error: %s", err)
	}
	assert.Equal(t, info.Sequence, info.Indexed, "index behind")
	return info.Root
}

func TestStakeUnstakeScenario(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 14, 64)
	h := newKey(t)

	ref, err := p.IssueItem(c, h.Identity())
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}
	assert.Equal(t, uint32(0), ref.Index, "index")
	assert.Equal(t, uint64(0), ref.Nonce, "nonce")

	root0 := root(t, p, c)
	proof0, owner := proof(t, p, c, 0)
	assert.Equal(t, root0, proof0.Root, "proof root")
	assert.True(t, h.Identity().Equal(owner), "issued owner")
	assert.Equal(t, ref.DataHash, proof0.DataHash, "data hash")
	assert.Equal(t, ref.CreatorHash, proof0.CreatorHash, "creator hash")

	record, err := p.Stake(c, h, proof0)
	if nil != err {
		t.Fatalf("stake error: %s", err)
	}
	assert.True(t, h.Identity().Equal(record.Owner), "record owner")

	escrow, err := p.Escrow(c, h.Identity())
	assert.Nil(t, err, "escrow")
	root1 := root(t, p, c)
	assert.NotEqual(t, root0, root1, "root unchanged by stake")

	proof1, owner := proof(t, p, c, 0)
	assert.True(t, escrow.Equal(owner), "owner after stake")
	assert.Equal(t, root1, proof1.Root, "fresh proof root")

	_, err = p.Record(c, h.Identity())
	assert.Nil(t, err, "record after stake")

	err = p.Unstake(c, nil, h, proof1)
	if nil != err {
		t.Fatalf("unstake error: %s", err)
	}

	_, owner = proof(t, p, c, 0)
	assert.True(t, h.Identity().Equal(owner), "owner after unstake")
	_, err = p.Record(c, h.Identity())
	assert.Equal(t, fault.NoActiveStake, err, "record after unstake")
}

func TestNotStaker(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 14, 64)
	h := newKey(t)
	h2 := newKey(t)
	issue(t, p, c, h.Identity())

	pr, _ := proof(t, p, c, 0)
	_, err := p.Stake(c, h, pr)
	assert.Nil(t, err, "stake")

	before := root(t, p, c)
	fresh, _ := proof(t, p, c, 0)
	err = p.Unstake(c, h.Identity(), h2, fresh)
	assert.Equal(t, fault.NotStaker, err, "second holder unstaked")
	assert.True(t, fault.IsErrAuthorisation(err), "error class")

	assert.Equal(t, before, root(t, p, c), "root changed")
	record, err := p.Record(c, h.Identity())
	assert.Nil(t, err, "record removed")
	assert.True(t, h.Identity().Equal(record.Owner), "record owner")

	// h2 has no stake of its own
	err = p.Unstake(c, nil, h2, fresh)
	assert.Equal(t, fault.NoActiveStake, err, "second holder own stake")
}

func TestStrictAlternation(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 5, 8)
	h := newKey(t)
	issue(t, p, c, h.Identity())

	pr, _ := proof(t, p, c, 0)
	err := p.Unstake(c, nil, h, pr)
	assert.Equal(t, fault.NoActiveStake, err, "unstake before stake")

	for round := 0; round < 3; round += 1 {
		pr, _ = proof(t, p, c, 0)
		_, err = p.Stake(c, h, pr)
		assert.Nil(t, err, "%d: stake", round)

		pr, _ = proof(t, p, c, 0)
		_, err = p.Stake(c, h, pr)
		assert.Equal(t, fault.AlreadyStaked, err, "%d: consecutive stake", round)

		err = p.Unstake(c, nil, h, pr)
		assert.Nil(t, err, "%d: unstake", round)

		pr, _ = proof(t, p, c, 0)
		err = p.Unstake(c, nil, h, pr)
		assert.Equal(t, fault.NoActiveStake, err, "%d: consecutive unstake", round)
	}
}

func TestStakeTwiceSameProof(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 5, 8)
	h := newKey(t)
	issue(t, p, c, h.Identity())

	pr, _ := proof(t, p, c, 0)
	first, err := p.Stake(c, h, pr)
	assert.Nil(t, err, "first stake")

	after := root(t, p, c)
	_, err = p.Stake(c, h, pr)
	assert.Equal(t, fault.AlreadyStaked, err, "second stake")
	assert.True(t, fault.IsErrExists(err), "error class")

	assert.Equal(t, after, root(t, p, c), "root changed by failed stake")
	record, err := p.Record(c, h.Identity())
	assert.Nil(t, err, "record")
	assert.Equal(t, first.Sequence, record.Sequence, "record changed by failed stake")
}

func TestStaleProof(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 5, 8)
	h := newKey(t)
	issue(t, p, c, h.Identity())

	old, _ := proof(t, p, c, 0)
	issue(t, p, c, h.Identity())
	current := root(t, p, c)

	_, err := p.Stake(c, h, old)
	assert.Equal(t, fault.StaleProof, err, "stake with old root")
	assert.True(t, fault.IsErrStale(err), "error class")
	assert.Equal(t, current, root(t, p, c), "root changed")
	_, err = p.Record(c, h.Identity())
	assert.Equal(t, fault.NoActiveStake, err, "record written")

	// a refreshed proof succeeds, then unstake goes stale the same way
	fresh, _ := proof(t, p, c, 0)
	_, err = p.Stake(c, h, fresh)
	assert.Nil(t, err, "stake with fresh proof")

	issue(t, p, c, newKey(t).Identity())
	current = root(t, p, c)
	err = p.Unstake(c, nil, h, fresh)
	assert.Equal(t, fault.StaleProof, err, "unstake with old root")
	assert.Equal(t, current, root(t, p, c), "root changed")

	fresh, _ = proof(t, p, c, 0)
	assert.Nil(t, p.Unstake(c, nil, h, fresh), "unstake with fresh proof")
}

func TestNotOwner(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 5, 8)
	h := newKey(t)
	thief := newKey(t)
	issue(t, p, c, h.Identity())

	pr, _ := proof(t, p, c, 0)
	_, err := p.Stake(c, thief, pr)
	assert.Equal(t, fault.NotOwner, err, "stake of another holder's item")

	_, err = p.Stake(c, signer.Unverified(h.Identity()), pr)
	assert.Equal(t, fault.Unauthorised, err, "unsigned stake")

	_, err = p.Record(c, thief.Identity())
	assert.Equal(t, fault.NoActiveStake, err, "record written")
}

func TestCollectionLimits(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	_, err := p.CreateCollection(newKey(t), newKey(t), 14, 63)
	assert.Equal(t, fault.InvalidCapacity, err, "unsupported buffer")
	_, err = p.CreateCollection(newKey(t), newKey(t), 31, 2048)
	assert.Equal(t, fault.InvalidCapacity, err, "unsupported depth")

	tree := newKey(t)
	_, err = p.CreateCollection(newKey(t), tree, 3, 8)
	assert.Nil(t, err, "create")
	_, err = p.CreateCollection(newKey(t), tree, 3, 8)
	assert.True(t, fault.IsErrExists(err), "second create: %v", err)

	for i := 0; i < 8; i += 1 {
		issue(t, p, tree.Identity(), newKey(t).Identity())
	}
	_, err = p.IssueItem(tree.Identity(), newKey(t).Identity())
	assert.Equal(t, fault.CollectionFull, err, "issue into full collection")

	info, err := p.Collection(tree.Identity())
	assert.Nil(t, err, "collection info")
	assert.Equal(t, uint64(8), info.Minted, "minted")
}

func TestRacingStakes(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 5, 8)
	h := newKey(t)
	h2 := newKey(t)
	issue(t, p, c, h.Identity())
	issue(t, p, c, h2.Identity())

	race := func(calls ...func() error) []error {
		errs := make([]error, len(calls))
		var wg sync.WaitGroup
		for i, call := range calls {
			wg.Add(1)
			go func(i int, call func() error) {
				defer wg.Done()
				errs[i] = call()
			}(i, call)
		}
		wg.Wait()
		return errs
	}

	// same pair: exactly one record is created
	pr, _ := proof(t, p, c, 0)
	stake := func() error {
		_, err := p.Stake(c, h, pr)
		return err
	}
	errs := race(stake, stake)
	assert.ElementsMatch(t, []error{nil, fault.AlreadyStaked}, errs, "same pair")

	// different holders with proofs against the same root: one wins
	fresh, _ := proof(t, p, c, 0)
	other, _ := proof(t, p, c, 1)
	errs = race(
		func() error { return p.Unstake(c, nil, h, fresh) },
		func() error {
			_, err := p.Stake(c, h2, other)
			return err
		},
	)
	assert.ElementsMatch(t, []error{nil, fault.StaleProof}, errs, "same root")
}

func TestIssuanceOverride(t *testing.T) {
	override := &metadata.Override{
		Name:                 "Staked",
		SellerFeeBasisPoints: -1,
	}
	p := setup(t, override)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 3, 8)
	h := newKey(t)
	ref, err := p.IssueItem(c, h.Identity())
	assert.Nil(t, err, "issue")

	info, _ := p.Collection(c)
	defaults := metadata.DefaultAttributes(info.TreeAuthority)
	assert.NotEqual(t, defaults.DataHash(), ref.DataHash, "override ignored")
	assert.Equal(t, defaults.With(override).DataHash(), ref.DataHash, "override hash")
	assert.Equal(t, defaults.CreatorHash(), ref.CreatorHash, "creators changed")

	// items issued with an override stake like any other
	pr, _ := proof(t, p, c, ref.Index)
	_, err = p.Stake(c, h, pr)
	assert.Nil(t, err, "stake")
}

func TestItemList(t *testing.T) {
	p := setup(t, nil)
	defer fixtures.TeardownTestDatabase()

	c := create(t, p, 5, 8)
	h := newKey(t)
	for i := 0; i < 3; i += 1 {
		issue(t, p, c, h.Identity())
	}

	items, err := p.ItemList(h.Identity(), 0, 10)
	assert.Nil(t, err, "list")
	assert.Equal(t, 3, len(items), "count")

	pr, _ := proof(t, p, c, 1)
	_, err = p.Stake(c, h, pr)
	assert.Nil(t, err, "stake")

	// the staked item now belongs to the escrow
	items, _ = p.ItemList(h.Identity(), 0, 10)
	assert.Equal(t, 2, len(items), "count after stake")
	escrow, _ := p.Escrow(c, h.Identity())
	items, _ = p.ItemList(escrow, 0, 10)
	if assert.Equal(t, 1, len(items), "escrow count") {
		assert.Equal(t, uint32(1), items[0].Index, "escrow item")

		byAsset, err := p.AssetProof(items[0].Leaf.AssetId)
		assert.Nil(t, err, "asset proof")
		assert.Equal(t, uint32(1), byAsset.Index, "asset index")
	}

	info := p.Info()
	assert.True(t, info.Testing, "testing")
	assert.NotEqual(t, info.ProgramId, info.CompressionProgramId, "program ids")
}

func TestIndexRecoversLostEvents(t *testing.T) {
	err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database setup error: %s", err)
	}
	defer fixtures.TeardownTestDatabase()

	log := logger.New(fixtures.LogCategory)
	svc := compression.New(log, true)
	deriver := derivation.New(derivation.ProgramIdFromName("staking"), true)

	// events left in a queue that is never read, as on a stop
	stopped := indexer.New(log, messagebus.New(10))
	before := program.New(log, svc, deriver, stopped, indexer.Queued{Queue: messagebus.New(10)}, nil)
	c := create(t, before, 3, 8)
	h := newKey(t)
	issue(t, before, c, h.Identity())

	index := indexer.New(log, messagebus.New(0))
	p := program.New(log, svc, deriver, index, index, nil)
	issue(t, p, c, newKey(t).Identity())

	info, err := p.Collection(c)
	assert.Nil(t, err, "collection info")
	assert.Equal(t, info.Sequence, info.Indexed, "index behind")

	proof0, _ := proof(t, p, c, 0)
	_, err = p.Stake(c, h, proof0)
	assert.Nil(t, err, "stake with served proof")
}

func TestIndexCatchUpAfterRestart(t *testing.T) {
	err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database setup error: %s", err)
	}
	defer fixtures.TeardownTestDatabase()

	log := logger.New(fixtures.LogCategory)
	svc := compression.New(log, true)
	deriver := derivation.New(derivation.ProgramIdFromName("staking"), true)

	stopped := indexer.New(log, messagebus.New(10))
	before := program.New(log, svc, deriver, stopped, indexer.Queued{Queue: messagebus.New(10)}, nil)
	c := create(t, before, 3, 8)
	h := newKey(t)
	issue(t, before, c, h.Identity())

	// no further events: only the start up replay can fill the index
	index := indexer.New(log, messagebus.New(0))
	p := program.New(log, svc, deriver, index, index, nil)
	_, err = p.ItemProof(c, 0)
	assert.Equal(t, fault.CollectionNotFound, err, "indexed before catch up")

	assert.Nil(t, index.CatchUp(), "catch up")
	proof0, _ := proof(t, p, c, 0)
	_, err = p.Stake(c, h, proof0)
	assert.Nil(t, err, "stake after catch up")
}
