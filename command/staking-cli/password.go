// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/stakingd/fault"
)

const minimumPasswordLength = 8

func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return "", fmt.Errorf("no console for password, use --password")
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := terminal.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if nil != err {
		return "", err
	}
	return string(password), nil
}

// ask twice for the password of a new identity
func promptNewPassword() (string, error) {
	password, err := readPassword("Set identity password (length >= 8): ")
	if nil != err {
		return "", err
	}
	if len(password) < minimumPasswordLength {
		return "", fault.InvalidPasswordLength
	}

	verifyPassword, err := readPassword("Verify password: ")
	if nil != err {
		return "", err
	}
	if password != verifyPassword {
		return "", fault.PasswordMismatch
	}

	return password, nil
}

// ask for the password of an existing identity
func promptPassword(name string) (string, error) {
	return readPassword(fmt.Sprintf("password for %s: ", name))
}
