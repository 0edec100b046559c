// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
)

var testAuthority = &account.Account{
	AccountInterface: &account.DerivedAccount{
		Test:    true,
		Address: bytes.Repeat([]byte{0x42}, 32),
	},
}

// all levels of a tree built from scratch, levels[0] are the leaves
func fullTree(leaves []merkle.Digest, depth int) [][]merkle.Digest {
	empty := merkle.EmptyNodes(depth)
	levels := make([][]merkle.Digest, depth+1)
	levels[0] = make([]merkle.Digest, 1<<uint(depth))
	for i := range levels[0] {
		levels[0][i] = empty[0]
	}
	copy(levels[0], leaves)
	for l := 1; l <= depth; l += 1 {
		below := levels[l-1]
		levels[l] = make([]merkle.Digest, len(below)/2)
		for i := range levels[l] {
			levels[l][i] = merkle.HashPair(below[2*i], below[2*i+1])
		}
	}
	return levels
}

func proofFor(levels [][]merkle.Digest, index uint32) []merkle.Digest {
	depth := len(levels) - 1
	path := make([]merkle.Digest, depth)
	for l := 0; l < depth; l += 1 {
		path[l] = levels[l][merkle.SiblingIndex(index, l)]
	}
	return path
}

func leafDigest(i int) merkle.Digest {
	return merkle.NewDigest([]byte{byte(i), byte(i >> 8), 0x17})
}

func TestAppendMatchesFullTree(t *testing.T) {
	c := Capacity{MaxDepth: 5, MaxBufferSize: 8}
	tree := newTree(c, testAuthority)

	assert.Equal(t, merkle.EmptyRoot(5), tree.Root(), "wrong empty root")

	leaves := []merkle.Digest{}
	for i := 0; i < 32; i += 1 {
		leaf := leafDigest(i)
		leaves = append(leaves, leaf)

		index, nodes, err := tree.append(leaf)
		if nil != err {
			t.Fatalf("%d: append error: %s", i, err)
		}
		assert.Equal(t, uint32(i), index, "wrong index")

		levels := fullTree(leaves, 5)
		assert.Equal(t, levels[5][0], tree.Root(), "%d: wrong root", i)
		assert.Equal(t, levels[5][0], nodes[5], "%d: wrong path root", i)
		assert.Equal(t, proofFor(levels, index), tree.RightmostProof, "%d: wrong rightmost proof", i)
	}

	_, _, err := tree.append(leafDigest(99))
	assert.Equal(t, fault.CollectionFull, err, "append to full tree")
}

func TestReplaceKeepsRightmostProof(t *testing.T) {
	c := Capacity{MaxDepth: 3, MaxBufferSize: 8}
	tree := newTree(c, testAuthority)

	leaves := []merkle.Digest{}
	for i := 0; i < 5; i += 1 {
		leaves = append(leaves, leafDigest(i))
		_, _, err := tree.append(leaves[i])
		assert.Nil(t, err, "append")
	}

	// replace each existing leaf in turn, then append, and compare
	// against a tree computed from scratch every time
	for k := uint32(0); k < 5; k += 1 {
		levels := fullTree(leaves, 3)
		replacement := leafDigest(100 + int(k))

		nodes, err := tree.replace(tree.Root(), leaves[k], replacement, k, proofFor(levels, k))
		if nil != err {
			t.Fatalf("%d: replace error: %s", k, err)
		}
		leaves[k] = replacement

		levels = fullTree(leaves, 3)
		assert.Equal(t, levels[3][0], tree.Root(), "%d: wrong root after replace", k)
		assert.Equal(t, levels[3][0], nodes[3], "%d: wrong path root", k)
		assert.Equal(t, proofFor(levels, 4), tree.RightmostProof, "%d: wrong rightmost proof", k)
		assert.Equal(t, leaves[4], tree.RightmostLeaf, "%d: wrong rightmost leaf", k)
	}

	leaves = append(leaves, leafDigest(5))
	_, _, err := tree.append(leaves[5])
	assert.Nil(t, err, "append after replace")
	assert.Equal(t, fullTree(leaves, 3)[3][0], tree.Root(), "wrong root after append")
}

func TestReplaceErrors(t *testing.T) {
	c := Capacity{MaxDepth: 3, MaxBufferSize: 8}
	tree := newTree(c, testAuthority)

	leaves := []merkle.Digest{leafDigest(0), leafDigest(1)}
	for _, leaf := range leaves {
		_, _, err := tree.append(leaf)
		assert.Nil(t, err, "append")
	}
	levels := fullTree(leaves, 3)
	root := tree.Root()
	sequence := tree.Sequence

	_, err := tree.replace(root, leaves[0], leafDigest(9), 2, proofFor(levels, 2))
	assert.Equal(t, fault.InvalidLeafIndex, err, "index beyond leaf count")

	_, err = tree.replace(root, leaves[0], leafDigest(9), 0, proofFor(levels, 0)[:2])
	assert.Equal(t, fault.InvalidProofLength, err, "short proof")

	_, err = tree.replace(merkle.EmptyRoot(3), leaves[0], leafDigest(9), 0, proofFor(levels, 0))
	assert.Equal(t, fault.StaleProof, err, "old root accepted")

	_, err = tree.replace(root, leafDigest(7), leafDigest(9), 0, proofFor(levels, 0))
	assert.Equal(t, fault.InvalidProof, err, "wrong leaf accepted")

	assert.Equal(t, root, tree.Root(), "failed replace changed root")
	assert.Equal(t, sequence, tree.Sequence, "failed replace changed sequence")
}

func TestRootAge(t *testing.T) {
	c := Capacity{MaxDepth: 3, MaxBufferSize: 8}
	tree := newTree(c, testAuthority)

	roots := []merkle.Digest{tree.Root()}
	for i := 0; i < 8; i += 1 {
		_, _, err := tree.append(leafDigest(i))
		assert.Nil(t, err, "append")
		roots = append(roots, tree.Root())
	}

	age, ok := tree.RootAge(tree.Root())
	assert.True(t, ok, "current root not found")
	assert.Equal(t, uint64(0), age, "current root age")

	age, ok = tree.RootAge(roots[5])
	assert.True(t, ok, "recent root not found")
	assert.Equal(t, uint64(3), age, "recent root age")

	// buffer of 8 holds the last 8 roots, the empty root has gone
	_, ok = tree.RootAge(roots[0])
	assert.False(t, ok, "evicted root found")
}

func TestPackUnpackTree(t *testing.T) {
	c := Capacity{MaxDepth: 14, MaxBufferSize: 64}
	tree := newTree(c, testAuthority)
	for i := 0; i < 3; i += 1 {
		_, _, err := tree.append(leafDigest(i))
		assert.Nil(t, err, "append")
	}

	buffer := tree.pack()
	size, err := AccountSize(c)
	assert.Nil(t, err, "account size")
	assert.Equal(t, size, len(buffer), "packed size")

	decoded, err := unpackTree(buffer)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	assert.Equal(t, tree.Header.Capacity, decoded.Header.Capacity, "capacity")
	assert.True(t, testAuthority.Equal(decoded.Authority), "authority")
	assert.Equal(t, tree.Sequence, decoded.Sequence, "sequence")
	assert.Equal(t, tree.LeafCount, decoded.LeafCount, "leaf count")
	assert.Equal(t, tree.Root(), decoded.Root(), "root")
	assert.Equal(t, tree.RightmostProof, decoded.RightmostProof, "rightmost proof")
	assert.Equal(t, tree.RightmostLeaf, decoded.RightmostLeaf, "rightmost leaf")

	_, err = unpackTree(make([]byte, size))
	assert.Equal(t, fault.NotInitialised, err, "zero region")

	_, err = unpackTree(buffer[:size-1])
	assert.Equal(t, fault.InvalidAccountSize, err, "short region")
}

func TestCapacity(t *testing.T) {
	valid := []Capacity{{3, 8}, {14, 64}, {20, 1024}, {30, 2048}}
	for _, c := range valid {
		assert.True(t, c.Valid(), "%v rejected", c)
		size, err := AccountSize(c)
		assert.Nil(t, err, "%v size error", c)
		assert.Equal(t, headerSize+int(c.MaxBufferSize)*changeLogSize+int(c.MaxDepth+1)*32, size, "%v size", c)
	}

	invalid := []Capacity{{0, 0}, {14, 63}, {31, 2048}, {4, 8}, {14, 128}}
	for _, c := range invalid {
		assert.False(t, c.Valid(), "%v accepted", c)
		_, err := AccountSize(c)
		assert.Equal(t, fault.InvalidCapacity, err, "%v size error", c)
	}

	assert.Equal(t, uint64(16384), Capacity{14, 64}.Leaves(), "leaves")
}
