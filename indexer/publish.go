// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexer

import (
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/messagebus"
)

// Queued - publish events to a queue drained by Run
type Queued struct {
	Queue *messagebus.Queue
}

// Publish - send the packed event, the command is the event kind
//
// an event dropped by a full queue is recovered by CatchUp from the
// stored change log
func (q Queued) Publish(event *compression.Event) {
	q.Queue.Send(event.Kind.String(), event.Pack())
}
