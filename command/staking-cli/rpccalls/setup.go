// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	testnet bool
	verbose bool
	handle  io.Writer // if verbose is set output items here
	now     func() time.Time
}

// NewClient - create a RPC connection to a stakingd
func NewClient(testnet bool, connect string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if nil != err {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		testnet: testnet,
		verbose: verbose,
		handle:  handle,
		now:     time.Now,
	}
	return r, nil
}

// Close - shutdown the stakingd connection
func (client *Client) Close() {
	_ = client.client.Close()
	_ = client.conn.Close()
}

func (client *Client) call(method string, arguments interface{}, reply interface{}) error {
	if client.verbose {
		client.printJson(method+" request", arguments)
	}

	if err := client.client.Call(method, arguments, reply); nil != err {
		return err
	}

	if client.verbose {
		client.printJson(method+" reply", reply)
	}
	return nil
}

func (client *Client) printJson(title string, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(client.handle, "%s: JSON encode error: %s\n", title, err)
		return
	}
	fmt.Fprintf(client.handle, "%s:\n%s\n", title, b)
}
