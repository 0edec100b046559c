// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// internal constants
const (
	queueSize = 1000
)

// Message - a command and its packed parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// Queue - a single consumer message queue
type Queue struct {
	sync.Mutex
	c      chan Message
	closed bool
}

// BusType - the set of queues
type BusType struct {
	Indexer   *Queue // change log events for the item indexer
	TestQueue *Queue // for testing use
}

// Bus - all available queues
var Bus = BusType{
	Indexer:   newQueue(queueSize),
	TestQueue: newQueue(queueSize),
}

func newQueue(size int) *Queue {
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message
//
// never blocks: the message is dropped if the queue is full or has been
// released, and false is returned
func (queue *Queue) Send(command string, parameters ...[]byte) bool {
	queue.Lock()
	defer queue.Unlock()

	if queue.closed {
		return false
	}
	select {
	case queue.c <- Message{
		Command:    command,
		Parameters: parameters,
	}:
		return true
	default:
		return false
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Release - close the channel so the consumer's range loop ends
func (queue *Queue) Release() {
	queue.Lock()
	defer queue.Unlock()

	if !queue.closed {
		queue.closed = true
		close(queue.c)
	}
}

// New - a stand alone queue, mainly for tests
func New(size int) *Queue {
	if size <= 0 {
		size = queueSize
	}
	return newQueue(size)
}
