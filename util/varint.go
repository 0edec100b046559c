// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - longest encoding of a uint64
const Varint64MaximumBytes = 9

// AppendVarint64 - append the encoding of value to b
//
// seven bits per byte, least significant first, the top bit set on
// every byte but the last; the ninth byte carries a full eight bits
func AppendVarint64(b []byte, value uint64) []byte {
	for n := 1; n < Varint64MaximumBytes && value >= 0x80; n += 1 {
		b = append(b, byte(value)|0x80)
		value >>= 7
	}
	return append(b, byte(value))
}

// Varint64 - the encoding of value
func Varint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// ReadVarint64 - decode the varint at the start of buffer
//
// returns the value and the bytes consumed, or 0, 0 if truncated
func ReadVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	for i := 0; i < len(buffer); i += 1 {
		b := uint64(buffer[i])
		if Varint64MaximumBytes-1 == i {
			return value | b<<56, i + 1
		}
		value |= (b & 0x7f) << (7 * uint(i))
		if 0 == b&0x80 {
			return value, i + 1
		}
	}
	return 0, 0
}
