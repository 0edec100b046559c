// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/metadata"
)

func makeAccount(b byte) *account.Account {
	return &account.Account{
		AccountInterface: &account.DerivedAccount{
			Test:    true,
			Address: bytes.Repeat([]byte{b}, 32),
		},
	}
}

func TestDefaultAttributes(t *testing.T) {
	authority := makeAccount(1)
	args := metadata.DefaultAttributes(authority)

	assert.Nil(t, args.Validate(), "default attributes invalid")
	assert.Equal(t, "cNFT", args.Name, "name")
	assert.Equal(t, "cNFT", args.Symbol, "symbol")
	assert.Equal(t, "https://c.nft", args.URI, "uri")
	assert.Equal(t, uint16(500), args.SellerFeeBasisPoints, "royalty")
	assert.True(t, args.PrimarySaleHappened, "primary sale")
	assert.True(t, args.IsMutable, "mutable")
	assert.Equal(t, metadata.NonFungible, args.TokenStandard, "standard")
	assert.Equal(t, 1, len(args.Creators), "creators")
	assert.True(t, authority.Equal(args.Creators[0].Address), "creator is not the tree authority")
	assert.False(t, args.Creators[0].Verified, "creator verified")
	assert.Equal(t, uint8(100), args.Creators[0].Share, "share")
}

func TestHashesAreStable(t *testing.T) {
	a1 := metadata.DefaultAttributes(makeAccount(1))
	a2 := metadata.DefaultAttributes(makeAccount(1))
	a3 := metadata.DefaultAttributes(makeAccount(2))

	assert.Equal(t, a1.DataHash(), a2.DataHash(), "data hash not deterministic")
	assert.Equal(t, a1.CreatorHash(), a2.CreatorHash(), "creator hash not deterministic")
	assert.NotEqual(t, a1.CreatorHash(), a3.CreatorHash(), "creator ignored")
	assert.NotEqual(t, a1.DataHash(), a3.DataHash(), "creator not in bundle")

	a2.SellerFeeBasisPoints = 250
	assert.NotEqual(t, a1.DataHash(), a2.DataHash(), "royalty ignored")
	assert.Equal(t, a1.CreatorHash(), a2.CreatorHash(), "royalty changed creator hash")
}

func TestValidate(t *testing.T) {
	base := func() *metadata.Args {
		return metadata.DefaultAttributes(makeAccount(1))
	}

	tests := []struct {
		name   string
		modify func(*metadata.Args)
	}{
		{"long name", func(a *metadata.Args) { a.Name = strings.Repeat("n", metadata.MaxNameLength+1) }},
		{"long symbol", func(a *metadata.Args) { a.Symbol = strings.Repeat("s", metadata.MaxSymbolLength+1) }},
		{"long uri", func(a *metadata.Args) { a.URI = strings.Repeat("u", metadata.MaxURILength+1) }},
		{"royalty", func(a *metadata.Args) { a.SellerFeeBasisPoints = metadata.MaxSellerFeeBasis + 1 }},
		{"shares", func(a *metadata.Args) { a.Creators[0].Share = 99 }},
		{"nil creator", func(a *metadata.Args) { a.Creators[0].Address = nil }},
		{"duplicate creator", func(a *metadata.Args) {
			a.Creators[0].Share = 50
			a.Creators = append(a.Creators, metadata.Creator{Address: a.Creators[0].Address, Share: 50})
		}},
		{"standard", func(a *metadata.Args) { a.TokenStandard = 9 }},
	}

	for _, test := range tests {
		args := base()
		test.modify(args)
		assert.Equal(t, fault.InvalidMetadata, args.Validate(), test.name)
	}

	args := base()
	args.Creators = nil
	assert.Nil(t, args.Validate(), "no creators rejected")
}

func TestOverride(t *testing.T) {
	args := metadata.DefaultAttributes(makeAccount(1))

	same := args.With(nil)
	assert.Equal(t, args.DataHash(), same.DataHash(), "nil override changed hash")

	same = args.With(&metadata.Override{SellerFeeBasisPoints: -1})
	assert.Equal(t, args.DataHash(), same.DataHash(), "empty override changed hash")

	changed := args.With(&metadata.Override{
		Name:                 "Staked",
		URI:                  "https://example.com/staked.json",
		SellerFeeBasisPoints: 0,
	})
	assert.Equal(t, "Staked", changed.Name, "name")
	assert.Equal(t, "cNFT", changed.Symbol, "symbol kept")
	assert.Equal(t, uint16(0), changed.SellerFeeBasisPoints, "royalty")
	assert.Equal(t, args.CreatorHash(), changed.CreatorHash(), "creators changed")
	assert.NotEqual(t, args.DataHash(), changed.DataHash(), "hash unchanged")
	assert.Equal(t, "cNFT", args.Name, "original modified")
	assert.Nil(t, changed.Validate(), "override invalid")
}
