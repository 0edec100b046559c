// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staking

import (
	"encoding/binary"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
)

// type tag of a packed staking record
const recordTag = 0x5d

// packed size: tag ++ owner ++ bump ++ index ++ sequence
const recordSize = 1 + account.IdentityLength + 1 + 1 + 4 + 8

// Record - proof that an item is held in escrow for Owner
type Record struct {
	Owner    *account.Account `json:"owner"`
	Bump     byte             `json:"bump"`
	Index    uint32           `json:"index"`
	Sequence uint64           `json:"sequence"`
}

// Pack - fixed size encoding for the staking record pool
func (record *Record) Pack() []byte {
	buffer := make([]byte, 0, recordSize)
	buffer = append(buffer, recordTag)
	buffer = append(buffer, record.Owner.Bytes()...)
	buffer = append(buffer, record.Bump)

	n := make([]byte, 12)
	binary.BigEndian.PutUint32(n[:4], record.Index)
	binary.BigEndian.PutUint64(n[4:], record.Sequence)
	return append(buffer, n...)
}

// UnpackRecord - decode a staking record
func UnpackRecord(buffer []byte) (*Record, error) {
	if recordSize != len(buffer) {
		return nil, fault.TruncatedRecord
	}
	if recordTag != buffer[0] {
		return nil, fault.InvalidItem
	}
	n := 1 + account.IdentityLength + 1
	owner, err := account.AccountFromBytes(buffer[1:n])
	if nil != err {
		return nil, err
	}
	return &Record{
		Owner:    owner,
		Bump:     buffer[n],
		Index:    binary.BigEndian.Uint32(buffer[n+1 : n+5]),
		Sequence: binary.BigEndian.Uint64(buffer[n+5:]),
	}, nil
}

// key: collection ++ holder
func recordKey(collection *account.Account, holder *account.Account) []byte {
	key := make([]byte, 0, 2*account.IdentityLength)
	key = append(key, collection.PublicKeyBytes()...)
	return append(key, holder.PublicKeyBytes()...)
}
