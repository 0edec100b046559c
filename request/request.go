// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package request - signatures carried by mutating RPC requests
//
// the signed message is the packed command name, the timestamp and
// the request fields, each length prefixed, so no two different
// requests share a message
package request

import (
	"time"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/signer"
	"github.com/bitmark-inc/stakingd/util"
)

// Window - how far a request timestamp may be from the server clock
const Window = 5 * time.Minute

// Signed - identity, time and signature of a request
type Signed struct {
	Identity  *account.Account  `json:"identity"`
	Timestamp int64             `json:"timestamp,string"`
	Signature account.Signature `json:"signature"`
}

// Message - the bytes signed for command
func Message(command string, timestamp int64, fields ...[]byte) []byte {
	p := util.Packed{}.
		Bytes([]byte(command)).
		Varint(uint64(timestamp)).
		Varint(uint64(len(fields)))
	for _, f := range fields {
		p = p.Bytes(f)
	}
	return p
}

// Sign - sign command at time now
func Sign(privateKey *account.PrivateKey, now time.Time, command string, fields ...[]byte) (*Signed, error) {
	timestamp := now.Unix()
	key, signature, err := signer.Sign(privateKey, Message(command, timestamp, fields...))
	if nil != err {
		return nil, err
	}
	return &Signed{
		Identity:  key.Identity(),
		Timestamp: timestamp,
		Signature: signature,
	}, nil
}

// Verify - check the signature of command and return the signer
func (s *Signed) Verify(now time.Time, command string, fields ...[]byte) (*signer.Key, error) {
	if nil == s || nil == s.Identity || nil == s.Identity.AccountInterface {
		return nil, fault.MissingParameters
	}

	t := time.Unix(s.Timestamp, 0)
	if t.Before(now.Add(-Window)) || t.After(now.Add(Window)) {
		return nil, fault.RecordHasExpired
	}

	return signer.Verify(s.Identity, Message(command, s.Timestamp, fields...), s.Signature)
}
