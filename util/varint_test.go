// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestVarint64(t *testing.T) {
	for _, item := range varint64Tests {
		assert.Equal(t, item.encoded, util.Varint64(item.value), "encode %x", item.value)

		prefixed := util.AppendVarint64([]byte{0x42}, item.value)
		assert.Equal(t, append([]byte{0x42}, item.encoded...), prefixed, "append %x", item.value)
	}
}

func TestReadVarint64(t *testing.T) {
	suffix := []byte{0xff, 0x97, 0x23}

	for _, item := range varint64Tests {
		value, count := util.ReadVarint64(item.encoded)
		assert.Equal(t, item.value, value, "decode %x", item.encoded)
		assert.Equal(t, len(item.encoded), count, "count %x", item.encoded)

		b := append(append([]byte{}, item.encoded...), suffix...)
		value, count = util.ReadVarint64(b)
		assert.Equal(t, item.value, value, "decode with suffix %x", b)
		assert.Equal(t, suffix, b[count:], "suffix %x", b)
	}
}

func TestReadVarint64Truncated(t *testing.T) {
	truncated := [][]byte{
		{},
		{0x80},
		{0xff, 0xff},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for _, b := range truncated {
		value, count := util.ReadVarint64(b)
		assert.Equal(t, uint64(0), value, "value %x", b)
		assert.Equal(t, 0, count, "count %x", b)
	}
}
