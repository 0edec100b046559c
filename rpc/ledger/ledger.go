// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/request"
	"github.com/bitmark-inc/stakingd/rpc/ratelimit"
	"github.com/bitmark-inc/stakingd/signer"
	"github.com/bitmark-inc/stakingd/staking"
)

const (
	rateLimitLedger = 100
	rateBurstLedger = 50

	// StakeCommand - signed request name of Stake
	StakeCommand = "Ledger.Stake"

	// UnstakeCommand - signed request name of Unstake
	UnstakeCommand = "Ledger.Unstake"
)

// Program - the part of the staking program used here
type Program interface {
	Stake(collection *account.Account, holder signer.Signer, proof *staking.Proof) (*staking.Record, error)
	Unstake(collection *account.Account, holder *account.Account, caller signer.Signer, proof *staking.Proof) error
	Record(collection *account.Account, holder *account.Account) (*staking.Record, error)
	Escrow(collection *account.Account, holder *account.Account) (*account.Account, error)
}

// Ledger - type for RPC calls
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Program Program
	Now     func() time.Time
}

// New - create a staking ledger RPC handler
func New(log *logger.L, p Program) *Ledger {
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Program: p,
		Now:     time.Now,
	}
}

// ---

// StakeArguments - arguments for Stake
type StakeArguments struct {
	Collection *account.Account `json:"collection"`
	Holder     *request.Signed  `json:"holder"`
	Proof      *staking.Proof   `json:"proof"`
}

// StakeReply - result of Stake
type StakeReply struct {
	Record *staking.Record  `json:"record"`
	Escrow *account.Account `json:"escrow"`
}

// StakeFields - the signed fields of a stake request
func StakeFields(collection *account.Account, proof *staking.Proof) [][]byte {
	return [][]byte{
		collection.Bytes(),
		proof.Pack(),
	}
}

// Stake - move the signing holder's item into escrow
func (l *Ledger) Stake(arguments *StakeArguments, reply *StakeReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Collection || nil == arguments.Holder || nil == arguments.Proof {
		return fault.MissingParameters
	}

	holder, err := arguments.Holder.Verify(l.Now(), StakeCommand, StakeFields(arguments.Collection, arguments.Proof)...)
	if nil != err {
		return err
	}

	record, err := l.Program.Stake(arguments.Collection, holder, arguments.Proof)
	if nil != err {
		return err
	}
	escrow, err := l.Program.Escrow(arguments.Collection, holder.Identity())
	if nil != err {
		return err
	}

	reply.Record = record
	reply.Escrow = escrow
	return nil
}

// ---

// UnstakeArguments - arguments for Unstake
//
// a missing holder means the caller's own stake, so a caller without a
// stake gets NoActiveStake; naming the holder of someone else's stake
// gets NotStaker
type UnstakeArguments struct {
	Collection *account.Account `json:"collection"`
	Holder     *account.Account `json:"holder"`
	Caller     *request.Signed  `json:"caller"`
	Proof      *staking.Proof   `json:"proof"`
}

// UnstakeReply - result of Unstake
type UnstakeReply struct {
	Owner *account.Account `json:"owner"`
}

// UnstakeFields - the signed fields of an unstake request
func UnstakeFields(collection *account.Account, holder *account.Account, proof *staking.Proof) [][]byte {
	h := []byte{}
	if nil != holder {
		h = holder.Bytes()
	}
	return [][]byte{
		collection.Bytes(),
		h,
		proof.Pack(),
	}
}

// Unstake - return a staked item to the signing caller
//
// only the identity recorded at stake time may unstake, see
// UnstakeArguments for the error a caller receives otherwise
func (l *Ledger) Unstake(arguments *UnstakeArguments, reply *UnstakeReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Collection || nil == arguments.Caller || nil == arguments.Proof {
		return fault.MissingParameters
	}

	caller, err := arguments.Caller.Verify(l.Now(), UnstakeCommand, UnstakeFields(arguments.Collection, arguments.Holder, arguments.Proof)...)
	if nil != err {
		return err
	}

	err = l.Program.Unstake(arguments.Collection, arguments.Holder, caller, arguments.Proof)
	if nil != err {
		return err
	}

	reply.Owner = caller.Identity()
	return nil
}

// ---

// RecordArguments - arguments for Record
type RecordArguments struct {
	Collection *account.Account `json:"collection"`
	Holder     *account.Account `json:"holder"`
}

// RecordReply - result of Record
type RecordReply struct {
	Record *staking.Record  `json:"record"`
	Escrow *account.Account `json:"escrow"`
}

// Record - the active stake of a holder
func (l *Ledger) Record(arguments *RecordArguments, reply *RecordReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Collection || nil == arguments.Holder {
		return fault.MissingParameters
	}

	record, err := l.Program.Record(arguments.Collection, arguments.Holder)
	if nil != err {
		return err
	}
	escrow, err := l.Program.Escrow(arguments.Collection, arguments.Holder)
	if nil != err {
		return err
	}

	reply.Record = record
	reply.Escrow = escrow
	return nil
}
