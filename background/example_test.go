// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/stakingd/background"
)

type drain struct {
	items chan int
	total int
}

func Example() {

	d := &drain{
		items: make(chan int, 4),
	}
	for i := 1; i <= 4; i += 1 {
		d.items <- i
	}
	close(d.items)

	p := background.Start(background.Processes{d}, "drain")
	p.Stop()

	fmt.Printf("total: %d\n", d.total)
	// Output:
	// total: 10
}

func (d *drain) Run(args interface{}, shutdown <-chan struct{}) {
	for item := range d.items {
		d.total += item
	}
	<-shutdown
}
