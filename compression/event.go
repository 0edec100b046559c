// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compression

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/storage"
	"github.com/bitmark-inc/stakingd/util"
)

// EventKind - the mutation that produced an event
type EventKind uint8

// kinds of event
const (
	EventInit EventKind = iota + 1
	EventAppend
	EventTransfer
)

// String - also the message bus command for the event
func (kind EventKind) String() string {
	switch kind {
	case EventInit:
		return "init"
	case EventAppend:
		return "append"
	case EventTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Event - change log of one tree mutation for the log wrapper
//
// Path holds the new node digests from the leaf (level 0) up to and
// including the new root; it is empty for EventInit
type Event struct {
	Kind     EventKind
	Tree     *account.Account
	Capacity Capacity
	Sequence uint64
	Index    uint32
	Path     []merkle.Digest
	Leaf     *LeafSchema
}

// Root - the root after the mutation
func (event *Event) Root() merkle.Digest {
	if 0 == len(event.Path) {
		return merkle.EmptyRoot(int(event.Capacity.MaxDepth))
	}
	return event.Path[len(event.Path)-1]
}

// Pack - encode for the message bus
func (event *Event) Pack() util.Packed {
	p := util.Packed{}.
		Varint(uint64(event.Kind)).
		Fixed(event.Tree.Bytes()).
		Varint(uint64(event.Capacity.MaxDepth)).
		Varint(uint64(event.Capacity.MaxBufferSize)).
		Varint(event.Sequence).
		Varint(uint64(event.Index)).
		Varint(uint64(len(event.Path)))
	for _, d := range event.Path {
		p = p.Fixed(d[:])
	}
	if nil == event.Leaf {
		return p.Bool(false)
	}
	return append(p.Bool(true), event.Leaf.Pack()...)
}

// UnpackEvent - decode a message bus parameter
func UnpackEvent(buffer []byte) (*Event, error) {
	u := util.NewUnpacker(buffer)

	kind := EventKind(u.Varint())
	tree, err := unpackAccount(u)
	if nil != err {
		return nil, err
	}
	event := &Event{
		Kind: kind,
		Tree: tree,
		Capacity: Capacity{
			MaxDepth:      uint32(u.Varint()),
			MaxBufferSize: uint32(u.Varint()),
		},
		Sequence: u.Varint(),
		Index:    uint32(u.Varint()),
	}
	if nil != u.Err() {
		return nil, u.Err()
	}
	if event.Kind < EventInit || event.Kind > EventTransfer || !event.Capacity.Valid() {
		return nil, fault.InvalidItem
	}

	n := u.Varint()
	if n > uint64(event.Capacity.MaxDepth)+1 {
		return nil, fault.InvalidProofLength
	}
	event.Path = make([]merkle.Digest, n)
	for i := range event.Path {
		copy(event.Path[i][:], u.Fixed(merkle.DigestLength))
	}

	if u.Bool() {
		leaf, err := unpackLeaf(u)
		if nil != err {
			return nil, err
		}
		event.Leaf = leaf
	}

	if err := u.Done(); nil != err {
		return nil, err
	}
	return event, nil
}

// EventKey - key of a stored event: tree ++ sequence
func EventKey(tree []byte, sequence uint64) []byte {
	key := make([]byte, len(tree)+8)
	copy(key, tree)
	binary.BigEndian.PutUint64(key[len(tree):], sequence)
	return key
}

// StoredEvent - the change log event of tree at sequence, nil if none
// was recorded
//
// a nil trx reads committed state
func StoredEvent(trx storage.Transaction, tree []byte, sequence uint64) (*Event, error) {
	buffer := get(trx, storage.Pool.Events, EventKey(tree, sequence))
	if nil == buffer {
		return nil, nil
	}
	event, err := UnpackEvent(buffer)
	if nil != err {
		fault.Criticalf("compression: event: %x[%d]  corrupt: %s", tree, sequence, err)
		return nil, err
	}
	if event.Sequence != sequence || !bytes.Equal(event.Tree.PublicKeyBytes(), tree) {
		fault.Criticalf("compression: event: %x[%d]  stored under wrong key", tree, sequence)
		return nil, fault.InvalidItem
	}
	return event, nil
}

// events are written in the unit of the mutation so the change log
// survives a lost publish
func recordEvent(trx storage.Transaction, event *Event) {
	trx.Put(storage.Pool.Events, EventKey(event.Tree.PublicKeyBytes(), event.Sequence), event.Pack())
}
