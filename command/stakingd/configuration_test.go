// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/fault"
)

func writeConfiguration(t *testing.T, content string) (string, string) {
	dir, err := ioutil.TempDir("", "stakingd")
	assert.Nil(t, err, "temp dir")

	name := filepath.Join(dir, "stakingd.conf")
	err = ioutil.WriteFile(name, []byte(content), 0600)
	assert.Nil(t, err, "write configuration")
	return dir, name
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, name := writeConfiguration(t, `
return {
    data_directory = ".",
    chain = "Testing",
    client_rpc = {
        listen = { "127.0.0.1:2130" },
    },
}
`)
	defer os.RemoveAll(dir)

	// TempDir may be behind a symlink
	dir, err := filepath.Abs(dir)
	assert.Nil(t, err, "abs")

	config, err := getConfiguration(name)
	assert.Nil(t, err, "configuration")

	assert.Equal(t, "testing", config.Chain, "chain")
	assert.Equal(t, filepath.Clean(dir), filepath.Clean(config.DataDirectory), "data directory")
	assert.Equal(t, filepath.Join(dir, "data", "testing.leveldb"), config.Database.Name, "database")
	assert.Equal(t, filepath.Join(dir, "rpc.crt"), config.ClientRPC.Certificate, "certificate")
	assert.Equal(t, filepath.Join(dir, "rpc.key"), config.ClientRPC.PrivateKey, "private key")
	assert.Equal(t, uint64(defaultRPCClients), config.ClientRPC.MaximumConnections, "connections")
	assert.Equal(t, []string{"127.0.0.1:2130"}, config.ClientRPC.Listen, "listen")
	assert.True(t, config.Issuance.IsEmpty(), "issuance override")
	assert.Equal(t, "", config.PidFile, "pid file")

	info, err := os.Stat(filepath.Join(dir, "log"))
	assert.Nil(t, err, "log directory")
	assert.True(t, info.IsDir(), "log directory")
}

func TestGetConfigurationIssuance(t *testing.T) {
	dir, name := writeConfiguration(t, `
return {
    data_directory = ".",
    chain = "local",
    pidfile = "stakingd.pid",
    issuance = {
        name = "Staking Pass",
        symbol = "PASS",
        seller_fee_basis_points = 250,
    },
}
`)
	defer os.RemoveAll(dir)

	config, err := getConfiguration(name)
	assert.Nil(t, err, "configuration")

	assert.Equal(t, "Staking Pass", config.Issuance.Name, "name")
	assert.Equal(t, "PASS", config.Issuance.Symbol, "symbol")
	assert.Equal(t, "", config.Issuance.URI, "uri")
	assert.Equal(t, 250, config.Issuance.SellerFeeBasisPoints, "fee")
	assert.False(t, config.Issuance.IsEmpty(), "override")
	assert.True(t, filepath.IsAbs(config.PidFile), "pid file")
	assert.Equal(t, "local.leveldb", filepath.Base(config.Database.Name), "database")
}

func TestGetConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no data directory", `return { chain = "testing" }`},
		{"bad chain", `return { data_directory = ".", chain = "nowhere" }`},
		{"fee too large", `return { data_directory = ".", issuance = { seller_fee_basis_points = 10001 } }`},
		{"database path", `return { data_directory = ".", database = { name = "a/b.leveldb" } }`},
		{"missing directory", `return { data_directory = "/nonexistent/stakingd" }`},
	}

	for _, test := range tests {
		dir, name := writeConfiguration(t, test.content)
		_, err := getConfiguration(name)
		assert.NotNil(t, err, test.name)
		os.RemoveAll(dir)
	}
}

func TestMakeSelfSignedCertificate(t *testing.T) {
	dir, err := ioutil.TempDir("", "stakingd")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	certificate := getFilenameWithDirectory([]string{dir}, rpcCertificateKeyFilename)
	key := getFilenameWithDirectory([]string{dir}, rpcPrivateKeyFilename)

	err = makeSelfSignedCertificate("rpc", certificate, key, false, nil)
	assert.Nil(t, err, "first certificate")

	info, err := os.Stat(key)
	assert.Nil(t, err, "key file")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "key mode")

	err = makeSelfSignedCertificate("rpc", certificate, key, false, nil)
	assert.Equal(t, fault.CertificateFileAlreadyExists, err, "existing certificate")

	assert.Equal(t, filepath.Join(".", "rpc.crt"), getFilenameWithDirectory(nil, rpcCertificateKeyFilename), "default directory")
}
