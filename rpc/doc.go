// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON RPC over TLS for the staking program
//
// mutating calls carry a request.Signed for every identity that must
// sign; read calls are open
package rpc
