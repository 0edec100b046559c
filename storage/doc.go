// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// All writes go through a Transaction, a single unit of work that
// holds the exclusive unit lock from NewDBTransaction until Commit or
// Abort.  Reads made through the transaction see its own pending
// writes; reads made directly on a pool only see committed data.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. tree         = 32 byte identity of a collection's tree account
// 4. holder       = 32 byte identity of an ed25519 account
// 5. owner        = 32 byte identity of any account (key or derived)
// 6. index        = leaf index as big endian uint32 (4 bytes)
// 7. level        = tree level as one byte, 0 is the leaf level
// 8. asset id     = 32 byte SHA3-256 digest
// 9. *others*     = byte values of various length
//
// Compression state:
//
//   A ++ tree                  - tree account
//                                data: fixed size region, see compression.AccountSize
//   C ++ tree                  - tree config
//                                data: creator ++ delegate ++ capacity(uint64) ++ minted(uint64)
//   E ++ tree ++ sequence(uint64) - change log event, written with the mutation
//                                data: packed compression.Event
//
// Staking:
//
//   S ++ tree ++ holder        - staking record, present iff the item is in escrow
//                                data: tag ++ owner ++ bump ++ index ++ sequence
//
// Indexer:
//
//   T ++ tree                  - indexed tree
//                                data: depth ++ buffer size ++ leaf count(uint32) ++ sequence(uint64)
//   L ++ tree ++ index         - indexed leaf
//                                data: packed leaf schema
//   N ++ tree ++ level ++ index - node digest above the leaves
//                                data: digest
//   I ++ asset id              - asset location
//                                data: tree ++ index
//   O ++ owner ++ tree ++ index - owned items
//                                data: asset id
//
// Testing:
//   Z ++ key                   - testing data
package storage
