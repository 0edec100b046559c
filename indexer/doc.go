// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package indexer - off ledger copy of every tree built from the
// compression change log events
//
// the tree accounts only hold the root and the path of the last leaf,
// so a holder needs the indexer to obtain the sibling path of an item
// before staking or unstaking it.  Events are applied strictly in
// sequence order per tree; an event that arrives early is held until
// the gap is filled.
package indexer
