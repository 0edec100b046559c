// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/fixtures"
)

func TestPanicIfError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	assert.Nil(t, fault.Initialise(), "first initialise")
	defer fault.Finalise()
	assert.Equal(t, fault.AlreadyInitialised, fault.Initialise(), "second initialise")

	assert.NotPanics(t, func() { fault.PanicIfError("no error", nil) }, "nil error")
	assert.Panics(t, func() { fault.PanicIfError("commit", fault.TruncatedRecord) }, "error")
	assert.Panics(t, func() { fault.Panicf("record: %d", 7) }, "Panicf")
	assert.NotPanics(t, func() { fault.Criticalf("tree: %s  corrupt", "x") }, "Criticalf")
}

func TestCriticalfWithoutLogger(t *testing.T) {
	assert.NotPanics(t, func() { fault.Criticalf("no logger: %d", 1) }, "uninitialised")
}
