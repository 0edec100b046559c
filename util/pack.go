// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/stakingd/fault"
)

// Packed - a record being built from varint and byte fields
type Packed []byte

// Varint - append a Varint64
func (p Packed) Varint(value uint64) Packed {
	return AppendVarint64(p, value)
}

// Bytes - append a length prefixed byte field
func (p Packed) Bytes(b []byte) Packed {
	p = AppendVarint64(p, uint64(len(b)))
	return append(p, b...)
}

// Fixed - append bytes whose length is implied by the record format
func (p Packed) Fixed(b []byte) Packed {
	return append(p, b...)
}

// Bool - append a single 0/1 byte
func (p Packed) Bool(b bool) Packed {
	if b {
		return append(p, 1)
	}
	return append(p, 0)
}

// Unpacker - read fields back in the order they were packed
//
// the first error sticks and every later read returns a zero value
type Unpacker struct {
	buffer []byte
	n      int
	err    error
}

// NewUnpacker - start reading a packed record
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{
		buffer: buffer,
	}
}

// Varint - next Varint64 field
func (u *Unpacker) Varint() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := ReadVarint64(u.buffer[u.n:])
	if 0 == count {
		u.err = fault.TruncatedRecord
		return 0
	}
	u.n += count
	return value
}

// Bytes - next length prefixed field, maximum bounds its length
func (u *Unpacker) Bytes(maximum int) []byte {
	length := u.Varint()
	if nil != u.err {
		return nil
	}
	if length > uint64(maximum) {
		u.err = fault.TruncatedRecord
		return nil
	}
	return u.Fixed(int(length))
}

// Fixed - next field of a known length, copied
func (u *Unpacker) Fixed(length int) []byte {
	if nil != u.err {
		return nil
	}
	if length < 0 || u.n+length > len(u.buffer) {
		u.err = fault.TruncatedRecord
		return nil
	}
	b := make([]byte, length)
	copy(b, u.buffer[u.n:u.n+length])
	u.n += length
	return b
}

// Bool - next 0/1 byte
func (u *Unpacker) Bool() bool {
	b := u.Fixed(1)
	if nil == b {
		return false
	}
	if b[0] > 1 {
		u.err = fault.TruncatedRecord
		return false
	}
	return 1 == b[0]
}

// Remaining - bytes not yet read
func (u *Unpacker) Remaining() int {
	return len(u.buffer) - u.n
}

// Err - the first error, or nil
func (u *Unpacker) Err() error {
	return u.err
}

// Done - error unless the whole record was read without error
func (u *Unpacker) Done() error {
	if nil != u.err {
		return u.err
	}
	if u.n != len(u.buffer) {
		return fault.TruncatedRecord
	}
	return nil
}
