// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/counter"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/fixtures"
	"github.com/bitmark-inc/stakingd/rpc/certificate"
	"github.com/bitmark-inc/stakingd/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func newConfig(listen ...string) *listeners.RPCConfiguration {
	return &listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             listen,
	}
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	con := newConfig(fmt.Sprintf("127.0.0.1:%d", port))

	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	if nil != err {
		t.Fatalf("register with error: %s", err)
	}

	cer, key, err := certgen.NewTLSCertPair("listener test", time.Now().Add(time.Hour), false, nil)
	if nil != err {
		t.Fatalf("certificate generation error: %s", err)
	}
	tlsCertificate, _, err := certificate.FromPEM(logger.New(fixtures.LogCategory), cer, key)
	if nil != err {
		t.Fatalf("get certificate with error: %s", err)
	}

	l, err := listeners.NewRPC(con, logger.New(fixtures.LogCategory), &count, s, tlsCertificate)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	c, err := tls.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port), &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	client := jsonrpc.NewClient(c)
	defer client.Close()

	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
}

func TestRpcListenerConfigurationErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	count := counter.Counter(0)
	s := rpc.NewServer()

	tooFew := newConfig("127.0.0.1:1234")
	tooFew.MaximumConnections = 0

	items := []struct {
		con *listeners.RPCConfiguration
		err error
	}{
		{tooFew, fault.MissingParameters},
		{newConfig(), fault.MissingParameters},
		{newConfig("1"), fault.InvalidIPAddress},
		{newConfig(""), fault.InvalidIPAddress},
		{newConfig("localhost:1234"), fault.InvalidIPAddress},
	}

	for i, item := range items {
		_, err := listeners.NewRPC(item.con, logger.New(fixtures.LogCategory), &count, s, &tls.Config{})
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}

func TestRpcListenerAddresses(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	count := counter.Counter(0)
	s := rpc.NewServer()

	con := newConfig("*:1234", "[::1]:1234", "127.0.0.1:1234")
	_, err := listeners.NewRPC(con, logger.New(fixtures.LogCategory), &count, s, &tls.Config{})
	assert.Nil(t, err, "wrong NewRPC")
	assert.Equal(t, "*:1234", con.Listen[0], "configuration modified")
}

func TestRpcListenerServeWhenInvalidTLSConfig(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	con := newConfig(fmt.Sprintf("127.0.0.1:%d", port))

	count := counter.Counter(0)

	l, err := listeners.NewRPC(con, logger.New(fixtures.LogCategory), &count, rpc.NewServer(), &tls.Config{})
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.NotNil(t, err, "wrong Serve")
	assert.Contains(t, err.Error(), "tls", "wrong error message")
}
