// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/stakingd/fault"
)

// Transaction - a single unit of work over all pools
//
// writes are invisible to other readers until Commit; after Commit
// or Abort the transaction must not be used again except to Abort,
// which is then a no-op so it can be deferred
type Transaction interface {
	Abort()
	Commit() error
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
}

// shared by all units, only one unit holds it at a time
type transactionData struct {
	sync.Mutex
	access Access
}

// one unit of work
type unitOfWork struct {
	sync.Mutex
	inUse  bool
	shared *transactionData
}

func newTransaction(access Access) *transactionData {
	return &transactionData{
		access: access,
	}
}

// wait for exclusive use
func (t *transactionData) begin() Transaction {
	t.Lock()
	return &unitOfWork{
		inUse:  true,
		shared: t,
	}
}

// release the unit, returns false if it was already released
func (u *unitOfWork) end() bool {
	u.Lock()
	wasInUse := u.inUse
	u.inUse = false
	u.Unlock()

	if wasInUse {
		u.shared.Unlock()
	}
	return wasInUse
}

func (u *unitOfWork) InUse() bool {
	u.Lock()
	defer u.Unlock()
	return u.inUse
}

func (u *unitOfWork) mustBeInUse(operation string) {
	if !u.InUse() {
		logger.Panicf("transaction.%s: %s", operation, fault.TransactionNotInProgress)
	}
}

func (u *unitOfWork) Put(handle *PoolHandle, key []byte, value []byte) {
	u.mustBeInUse("Put")
	handle.put(key, value)
}

func (u *unitOfWork) PutN(handle *PoolHandle, key []byte, value uint64) {
	u.mustBeInUse("PutN")
	handle.putN(key, value)
}

func (u *unitOfWork) Delete(handle *PoolHandle, key []byte) {
	u.mustBeInUse("Delete")
	handle.remove(key)
}

func (u *unitOfWork) Get(handle *PoolHandle, key []byte) []byte {
	u.mustBeInUse("Get")
	return handle.pending(key)
}

func (u *unitOfWork) GetN(handle *PoolHandle, key []byte) (uint64, bool) {
	u.mustBeInUse("GetN")
	return decodeN(key, handle.pending(key))
}

func (u *unitOfWork) Has(handle *PoolHandle, key []byte) bool {
	u.mustBeInUse("Has")
	return handle.pendingHas(key)
}

// Commit - write all pending operations as one batch
func (u *unitOfWork) Commit() error {
	if !u.InUse() {
		return fault.TransactionNotInProgress
	}
	err := u.shared.access.Commit()
	if nil != err {
		u.shared.access.Abort()
	}
	u.end()
	return err
}

// Abort - discard all pending operations
func (u *unitOfWork) Abort() {
	if !u.InUse() {
		return
	}
	u.shared.access.Abort()
	u.end()
}
