// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// path arithmetic for a fixed depth binary tree
//
// structure is:
//   level 0          leaves, index 0 .. 2^depth-1
//   level 1..depth-1 interior nodes
//   level depth      root
//
// an empty leaf is the all zero digest and an empty interior node is the
// hash of two empty children, so an empty tree needs no storage

// MaximumDepth - deepest tree supported, leaf index must fit in 32 bits
const MaximumDepth = 30

// HashPair - combine a left and right child into the parent digest
func HashPair(left Digest, right Digest) Digest {
	return NewDigestOf(left[:], right[:])
}

// EmptyNodes - digests of empty subtrees for levels 0..depth inclusive
func EmptyNodes(depth int) []Digest {
	nodes := make([]Digest, depth+1)
	for i := 1; i <= depth; i += 1 {
		nodes[i] = HashPair(nodes[i-1], nodes[i-1])
	}
	return nodes
}

// EmptyRoot - root of a tree with no leaves
func EmptyRoot(depth int) Digest {
	return EmptyNodes(depth)[depth]
}

// ComputePath - node digests from leaf to root along the path of index
//
// path holds the sibling at each level starting from the leaf level,
// the result has len(path)+1 entries, the last of which is the root
func ComputePath(leaf Digest, index uint32, path []Digest) []Digest {
	nodes := make([]Digest, len(path)+1)
	nodes[0] = leaf
	node := leaf
	for level, sibling := range path {
		if 0 == (index>>uint(level))&1 {
			node = HashPair(node, sibling)
		} else {
			node = HashPair(sibling, node)
		}
		nodes[level+1] = node
	}
	return nodes
}

// ComputeRoot - root implied by a leaf, its index and its sibling path
func ComputeRoot(leaf Digest, index uint32, path []Digest) Digest {
	nodes := ComputePath(leaf, index, path)
	return nodes[len(nodes)-1]
}

// VerifyPath - check that leaf at index is a member of the tree with root
func VerifyPath(root Digest, leaf Digest, index uint32, path []Digest) bool {
	return root == ComputeRoot(leaf, index, path)
}

// SiblingIndex - index of the sibling at a level of the path to a leaf
func SiblingIndex(index uint32, level int) uint32 {
	return (index >> uint(level)) ^ 1
}
