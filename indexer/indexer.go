// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexer

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/messagebus"
	"github.com/bitmark-inc/stakingd/storage"
)

// internal constants
const (
	catchUpInterval = time.Minute
	catchUpBatch    = 100
)

// Indexer - applies change log events and answers proof queries
type Indexer struct {
	sync.RWMutex
	log     *logger.L
	queue   *messagebus.Queue
	pending map[string]map[uint64]*compression.Event
}

// New - create an indexer reading from queue
func New(log *logger.L, queue *messagebus.Queue) *Indexer {
	return &Indexer{
		log:     log,
		queue:   queue,
		pending: make(map[string]map[uint64]*compression.Event),
	}
}

// Publish - apply an event immediately
func (ix *Indexer) Publish(event *compression.Event) {
	if err := ix.Apply(event); nil != err {
		ix.log.Errorf("publish: %s  tree: %s  error: %s", event.Kind, event.Tree, err)
	}
}

// Run - background loop applying events from the queue
//
// the stored change log is replayed at start and then periodically so
// an event lost from the queue only delays the index
func (ix *Indexer) Run(args interface{}, shutdown <-chan struct{}) {
	ix.log.Info("starting…")

	if err := ix.CatchUp(); nil != err {
		ix.log.Errorf("catch up error: %s", err)
	}

	queue := ix.queue.Chan()
	delay := time.After(catchUpInterval)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-queue:
			if !ok {
				break loop
			}
			ix.process(item)
		case <-delay:
			if err := ix.CatchUp(); nil != err {
				ix.log.Errorf("catch up error: %s", err)
			}
			delay = time.After(catchUpInterval)
		}
	}

	n := ix.drain(queue)
	ix.log.Infof("stopped, drained: %d", n)
}

// apply whatever is already queued without waiting for more
func (ix *Indexer) drain(queue <-chan messagebus.Message) int {
	n := 0
	for {
		select {
		case item, ok := <-queue:
			if !ok {
				return n
			}
			ix.process(item)
			n += 1
		default:
			return n
		}
	}
}

func (ix *Indexer) process(item messagebus.Message) {
	if 1 != len(item.Parameters) {
		ix.log.Errorf("command: %s  parameter count: %d", item.Command, len(item.Parameters))
		return
	}
	event, err := compression.UnpackEvent(item.Parameters[0])
	if nil != err {
		ix.log.Errorf("command: %s  unpack error: %s", item.Command, err)
		return
	}
	if event.Kind.String() != item.Command {
		ix.log.Errorf("command: %s  does not match event: %s", item.Command, event.Kind)
		return
	}
	ix.Publish(event)
}

// Apply - record one event together with any stored or held events it
// depends on or unblocks
func (ix *Indexer) Apply(event *compression.Event) error {
	if nil == event || nil == event.Tree {
		return fault.MissingParameters
	}

	ix.Lock()
	defer ix.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	tree := event.Tree.PublicKeyBytes()
	if _, err := ix.replay(trx, tree); nil != err {
		return err
	}
	if _, err := ix.apply(trx, event); nil != err {
		return err
	}

	key := string(tree)
	for {
		next, err := nextSequence(trx, tree)
		if nil != err {
			return err
		}
		held, ok := ix.pending[key][next]
		if !ok {
			break
		}
		applied, err := ix.apply(trx, held)
		if fault.InvalidItem == err {
			ix.log.Warnf("%s: %s  sequence: %d  held event rejected: %s", held.Kind, held.Tree, held.Sequence, err)
			delete(ix.pending[key], next)
			break
		}
		if nil != err {
			return err
		}
		if !applied {
			break
		}
		if _, err := ix.replay(trx, tree); nil != err {
			return err
		}
	}

	next, err := nextSequence(trx, tree)
	if nil != err {
		return err
	}
	if err := trx.Commit(); nil != err {
		return err
	}
	ix.prune(key, next)
	return nil
}

// CatchUp - apply every stored change log event the index has not seen
func (ix *Indexer) CatchUp() error {
	cursor := storage.Pool.TreeConfigs.NewFetchCursor()
	total := 0
	for {
		elements, err := cursor.Fetch(catchUpBatch)
		if nil != err {
			return err
		}
		if 0 == len(elements) {
			break
		}
		for _, e := range elements {
			n, err := ix.catchUpTree(e.Key)
			if nil != err {
				return err
			}
			total += n
		}
	}
	if total > 0 {
		ix.log.Infof("catch up: applied: %d", total)
	}
	return nil
}

func (ix *Indexer) catchUpTree(tree []byte) (int, error) {
	ix.Lock()
	defer ix.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}
	defer trx.Abort()

	n, err := ix.replay(trx, tree)
	if nil != err || 0 == n {
		return 0, err
	}
	next, err := nextSequence(trx, tree)
	if nil != err {
		return 0, err
	}
	if err := trx.Commit(); nil != err {
		return 0, err
	}
	ix.prune(string(tree), next)
	return n, nil
}

// apply stored events that directly follow the indexed sequence
func (ix *Indexer) replay(trx storage.Transaction, tree []byte) (int, error) {
	n := 0
	for {
		next, err := nextSequence(trx, tree)
		if nil != err {
			return n, err
		}
		event, err := compression.StoredEvent(trx, tree, next)
		if nil != err || nil == event {
			return n, err
		}
		applied, err := ix.apply(trx, event)
		if nil != err || !applied {
			return n, err
		}
		n += 1
	}
}

// the sequence the index of tree expects next, 0 is the init event
func nextSequence(trx storage.Transaction, tree []byte) (uint64, error) {
	buffer := trx.Get(storage.Pool.IndexTrees, tree)
	if nil == buffer {
		return 0, nil
	}
	state, err := unpackTreeState(buffer)
	if nil != err {
		fault.Criticalf("indexer: tree: %x  corrupt: %s", tree, err)
		return 0, err
	}
	return state.Sequence + 1, nil
}

// forget held events below the committed sequence
func (ix *Indexer) prune(key string, next uint64) {
	for sequence := range ix.pending[key] {
		if sequence < next {
			delete(ix.pending[key], sequence)
		}
	}
	if 0 == len(ix.pending[key]) {
		delete(ix.pending, key)
	}
}

// returns false if the event was held or dropped
func (ix *Indexer) apply(trx storage.Transaction, event *compression.Event) (bool, error) {
	tree := event.Tree.PublicKeyBytes()
	buffer := trx.Get(storage.Pool.IndexTrees, tree)

	if compression.EventInit == event.Kind {
		if nil != buffer {
			ix.log.Debugf("init: %s  already indexed", event.Tree)
			return false, nil
		}
		state := &TreeState{
			Tree:      event.Tree,
			Capacity:  event.Capacity,
			LeafCount: 0,
			Sequence:  event.Sequence,
			Root:      event.Root(),
		}
		trx.Put(storage.Pool.IndexTrees, tree, state.pack())
		ix.log.Infof("init: %s  depth: %d", event.Tree, event.Capacity.MaxDepth)
		return true, nil
	}

	if nil == buffer {
		ix.hold(event)
		return false, nil
	}
	state, err := unpackTreeState(buffer)
	if nil != err {
		fault.Criticalf("indexer: tree: %s  corrupt: %s", event.Tree, err)
		return false, err
	}

	switch {
	case event.Sequence <= state.Sequence:
		ix.log.Debugf("%s: %s  sequence: %d  already applied", event.Kind, event.Tree, event.Sequence)
		return false, nil
	case event.Sequence != state.Sequence+1:
		ix.hold(event)
		return false, nil
	}

	depth := int(state.Capacity.MaxDepth)
	if nil == event.Leaf || depth+1 != len(event.Path) || event.Capacity != state.Capacity {
		return false, fault.InvalidItem
	}

	key := leafKey(tree, event.Index)
	if previous := trx.Get(storage.Pool.IndexLeaves, key); nil != previous {
		leaf, err := compression.UnpackLeaf(previous)
		if nil != err {
			fault.Criticalf("indexer: leaf: %s[%d]  corrupt: %s", event.Tree, event.Index, err)
			return false, err
		}
		trx.Delete(storage.Pool.IndexOwners, ownerKey(leaf.Owner.PublicKeyBytes(), tree, event.Index))
	}

	assetId := event.Leaf.AssetId.PublicKeyBytes()
	trx.Put(storage.Pool.IndexLeaves, key, event.Leaf.Pack())
	trx.Put(storage.Pool.IndexAssets, assetId, key)
	trx.Put(storage.Pool.IndexOwners, ownerKey(event.Leaf.Owner.PublicKeyBytes(), tree, event.Index), assetId)

	for level := 0; level < depth; level += 1 {
		trx.Put(storage.Pool.IndexNodes, nodeKey(tree, level, event.Index>>uint(level)), event.Path[level][:])
	}

	state.Sequence = event.Sequence
	state.Root = event.Path[depth]
	if event.Index >= state.LeafCount {
		state.LeafCount = event.Index + 1
	}
	trx.Put(storage.Pool.IndexTrees, tree, state.pack())

	ix.log.Debugf("%s: %s  index: %d  sequence: %d", event.Kind, event.Tree, event.Index, event.Sequence)
	return true, nil
}

// keep an event that arrived before its predecessor
func (ix *Indexer) hold(event *compression.Event) {
	key := string(event.Tree.PublicKeyBytes())
	held, ok := ix.pending[key]
	if !ok {
		held = make(map[uint64]*compression.Event)
		ix.pending[key] = held
	}
	held[event.Sequence] = event
	ix.log.Debugf("%s: %s  sequence: %d  held", event.Kind, event.Tree, event.Sequence)
}

// sibling digest at level, an empty subtree if never written
func sibling(tree []byte, level int, index uint32, empty []merkle.Digest) merkle.Digest {
	buffer := storage.Pool.IndexNodes.Get(nodeKey(tree, level, merkle.SiblingIndex(index, level)))
	if nil == buffer {
		return empty[level]
	}
	var d merkle.Digest
	copy(d[:], buffer)
	return d
}
