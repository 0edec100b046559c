// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS server configuration for the RPC listeners
package certificate

import (
	"crypto/tls"
	"io/ioutil"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
)

// Fingerprint - SHA3-256 of a DER certificate, clients use it to
// pin a self signed server
//
// openssl x509 -outform DER -in rpc.crt | sha3sum -a 256
type Fingerprint [32]byte

// Load - TLS configuration from PEM certificate and key files
func Load(log *logger.L, certificateFile string, keyFile string) (*tls.Config, Fingerprint, error) {
	certificatePEM, err := ioutil.ReadFile(certificateFile)
	if nil != err {
		log.Errorf("read certificate: %q  error: %s", certificateFile, err)
		return nil, Fingerprint{}, err
	}
	keyPEM, err := ioutil.ReadFile(keyFile)
	if nil != err {
		log.Errorf("read private key: %q  error: %s", keyFile, err)
		return nil, Fingerprint{}, err
	}
	return FromPEM(log, certificatePEM, keyPEM)
}

// FromPEM - TLS configuration from PEM certificate and key data
func FromPEM(log *logger.L, certificatePEM []byte, keyPEM []byte) (*tls.Config, Fingerprint, error) {
	keyPair, err := tls.X509KeyPair(certificatePEM, keyPEM)
	if nil != err {
		log.Errorf("failed to load keypair: %s", err)
		return nil, Fingerprint{}, err
	}

	fingerprint := Fingerprint(sha3.Sum256(keyPair.Certificate[0]))
	log.Infof("certificate SHA3-256 fingerprint: %x", fingerprint)

	return &tls.Config{
		Certificates: []tls.Certificate{keyPair},
		MinVersion:   tls.VersionTLS12,
	}, fingerprint, nil
}
