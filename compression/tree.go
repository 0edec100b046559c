// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compression

import (
	"encoding/binary"
	"math/bits"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
)

const (
	tagEmpty       = 0x00
	tagInitialised = 0x01
)

// ChangeLog - one recent root
type ChangeLog struct {
	Root     merkle.Digest
	Index    uint32
	Sequence uint64
}

// Header - the fixed part of a tree account
type Header struct {
	Capacity
	Authority   *account.Account
	Sequence    uint64
	ActiveIndex uint32
	BufferSize  uint32
	LeafCount   uint32
}

// Tree - decoded tree account
//
// only the root, the recent roots and the path of the last leaf are
// kept, every other node lives with the indexer
type Tree struct {
	Header
	ChangeLogs     []ChangeLog
	RightmostProof []merkle.Digest
	RightmostLeaf  merkle.Digest
}

// isZero - true if a region has never been written
func isZero(region []byte) bool {
	for _, b := range region {
		if 0 != b {
			return false
		}
	}
	return true
}

// newTree - state of a freshly initialised tree
func newTree(c Capacity, authority *account.Account) *Tree {
	empty := merkle.EmptyNodes(int(c.MaxDepth))
	t := &Tree{
		Header: Header{
			Capacity:    c,
			Authority:   authority,
			Sequence:    0,
			ActiveIndex: 0,
			BufferSize:  1,
			LeafCount:   0,
		},
		ChangeLogs:     make([]ChangeLog, c.MaxBufferSize),
		RightmostProof: make([]merkle.Digest, c.MaxDepth),
	}
	copy(t.RightmostProof, empty[:c.MaxDepth])
	t.ChangeLogs[0] = ChangeLog{
		Root:     empty[c.MaxDepth],
		Index:    0,
		Sequence: 0,
	}
	return t
}

// Root - the current commitment root
func (t *Tree) Root() merkle.Digest {
	return t.ChangeLogs[t.ActiveIndex].Root
}

// RootAge - how many mutations ago root was current
//
// second result is false if root is older than the change log
func (t *Tree) RootAge(root merkle.Digest) (uint64, bool) {
	n := t.BufferSize
	for i := uint32(0); i < n; i += 1 {
		j := (t.ActiveIndex + t.MaxBufferSize - i) % t.MaxBufferSize
		if t.ChangeLogs[j].Root == root {
			return t.Sequence - t.ChangeLogs[j].Sequence, true
		}
	}
	return 0, false
}

// append - add a leaf at the next free index
//
// returns the index used and the node digests of its path
func (t *Tree) append(leaf merkle.Digest) (uint32, []merkle.Digest, error) {
	depth := int(t.MaxDepth)
	n := t.LeafCount
	if uint64(n) >= t.Leaves() {
		return 0, nil, fault.CollectionFull
	}

	empty := merkle.EmptyNodes(depth)
	siblings := make([]merkle.Digest, depth)

	if 0 == n {
		copy(siblings, empty[:depth])
	} else {
		// below the lowest set bit of n the siblings are empty right
		// hand subtrees, at that bit the sibling is the subtree ending
		// with the previous rightmost leaf, above it the path is shared
		tz := bits.TrailingZeros32(n)
		previous := merkle.ComputePath(t.RightmostLeaf, n-1, t.RightmostProof)
		for i := 0; i < depth; i += 1 {
			switch {
			case i < tz:
				siblings[i] = empty[i]
			case i == tz:
				siblings[i] = previous[i]
			default:
				siblings[i] = t.RightmostProof[i]
			}
		}
	}

	nodes := merkle.ComputePath(leaf, n, siblings)

	t.RightmostProof = siblings
	t.RightmostLeaf = leaf
	t.LeafCount = n + 1
	t.pushRoot(nodes[depth], n)

	return n, nodes, nil
}

// replace - swap the leaf at index after proving the current one
//
// root is the root the caller's proof was built against
func (t *Tree) replace(root merkle.Digest, previousLeaf merkle.Digest, newLeaf merkle.Digest, index uint32, proof []merkle.Digest) ([]merkle.Digest, error) {
	depth := int(t.MaxDepth)
	if index >= t.LeafCount {
		return nil, fault.InvalidLeafIndex
	}
	if depth != len(proof) {
		return nil, fault.InvalidProofLength
	}
	if root != t.Root() {
		return nil, fault.StaleProof
	}
	if !merkle.VerifyPath(root, previousLeaf, index, proof) {
		return nil, fault.InvalidProof
	}

	nodes := merkle.ComputePath(newLeaf, index, proof)

	last := t.LeafCount - 1
	if index == last {
		t.RightmostLeaf = newLeaf
	} else {
		// the one level where the path of index is a sibling of the
		// path of the rightmost leaf
		level := bits.Len32(index^last) - 1
		t.RightmostProof[level] = nodes[level]
	}

	t.pushRoot(nodes[depth], index)

	return nodes, nil
}

func (t *Tree) pushRoot(root merkle.Digest, index uint32) {
	t.Sequence += 1
	t.ActiveIndex = (t.ActiveIndex + 1) % t.MaxBufferSize
	if t.BufferSize < t.MaxBufferSize {
		t.BufferSize += 1
	}
	t.ChangeLogs[t.ActiveIndex] = ChangeLog{
		Root:     root,
		Index:    index,
		Sequence: t.Sequence,
	}
}

// pack - encode into a region of exactly accountSize bytes
func (t *Tree) pack() []byte {
	buffer := make([]byte, accountSize(t.Capacity))

	buffer[0] = tagInitialised
	binary.BigEndian.PutUint32(buffer[1:5], t.MaxDepth)
	binary.BigEndian.PutUint32(buffer[5:9], t.MaxBufferSize)
	n := 9
	n += copy(buffer[n:], t.Authority.Bytes())
	binary.BigEndian.PutUint64(buffer[n:], t.Sequence)
	n += 8
	binary.BigEndian.PutUint32(buffer[n:], t.ActiveIndex)
	n += 4
	binary.BigEndian.PutUint32(buffer[n:], t.BufferSize)
	n += 4
	binary.BigEndian.PutUint32(buffer[n:], t.LeafCount)
	n += 4

	for _, c := range t.ChangeLogs {
		n += copy(buffer[n:], c.Root[:])
		binary.BigEndian.PutUint32(buffer[n:], c.Index)
		n += 4
		binary.BigEndian.PutUint64(buffer[n:], c.Sequence)
		n += 8
	}
	for _, d := range t.RightmostProof {
		n += copy(buffer[n:], d[:])
	}
	copy(buffer[n:], t.RightmostLeaf[:])

	return buffer
}

// unpackTree - decode a tree account region
func unpackTree(buffer []byte) (*Tree, error) {
	if len(buffer) < headerSize {
		return nil, fault.InvalidAccountSize
	}
	switch buffer[0] {
	case tagEmpty:
		return nil, fault.NotInitialised
	case tagInitialised:
	default:
		return nil, fault.InvalidAccountSize
	}

	c := Capacity{
		MaxDepth:      binary.BigEndian.Uint32(buffer[1:5]),
		MaxBufferSize: binary.BigEndian.Uint32(buffer[5:9]),
	}
	if !c.Valid() || len(buffer) != accountSize(c) {
		return nil, fault.InvalidAccountSize
	}

	n := 9
	authority, err := account.AccountFromBytes(buffer[n : n+account.IdentityLength+1])
	if nil != err {
		return nil, err
	}
	n += account.IdentityLength + 1

	t := &Tree{
		Header: Header{
			Capacity:  c,
			Authority: authority,
		},
		ChangeLogs:     make([]ChangeLog, c.MaxBufferSize),
		RightmostProof: make([]merkle.Digest, c.MaxDepth),
	}
	t.Sequence = binary.BigEndian.Uint64(buffer[n:])
	n += 8
	t.ActiveIndex = binary.BigEndian.Uint32(buffer[n:])
	n += 4
	t.BufferSize = binary.BigEndian.Uint32(buffer[n:])
	n += 4
	t.LeafCount = binary.BigEndian.Uint32(buffer[n:])
	n += 4

	if t.ActiveIndex >= c.MaxBufferSize || t.BufferSize > c.MaxBufferSize || 0 == t.BufferSize {
		return nil, fault.InvalidAccountSize
	}

	for i := range t.ChangeLogs {
		copy(t.ChangeLogs[i].Root[:], buffer[n:])
		n += merkle.DigestLength
		t.ChangeLogs[i].Index = binary.BigEndian.Uint32(buffer[n:])
		n += 4
		t.ChangeLogs[i].Sequence = binary.BigEndian.Uint64(buffer[n:])
		n += 8
	}
	for i := range t.RightmostProof {
		copy(t.RightmostProof[i][:], buffer[n:])
		n += merkle.DigestLength
	}
	copy(t.RightmostLeaf[:], buffer[n:])

	return t, nil
}
