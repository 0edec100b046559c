// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of each error so that callers compare by
// identity and decide on a retry policy from the error class:
//
//   StaleError          - refresh the proof and resubmit
//   ExistsError         - the target already exists, pick another
//   AuthorisationError  - permanent, the caller is not entitled
package fault
