// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"unicode/utf8"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/util"
)

// limits on the attribute bundle
const (
	MaxNameLength        = 32
	MaxSymbolLength      = 10
	MaxURILength         = 200
	MaxCreators          = 5
	MaxSellerFeeBasis    = 10000
	totalCreatorShare    = 100
	creatorPackedVersion = 1
)

// TokenStandard - kind of collectible
type TokenStandard uint8

// token standards
const (
	NonFungible TokenStandard = iota
	FungibleAsset
	Fungible
	NonFungibleEdition
)

// TokenProgramVersion - ledger token program the item is compatible with
type TokenProgramVersion uint8

// token program versions
const (
	Original TokenProgramVersion = iota
	Token2022
)

// Creator - one attributed creator
type Creator struct {
	Address  *account.Account `json:"address"`
	Verified bool             `json:"verified"`
	Share    uint8            `json:"share"`
}

// Args - the attribute bundle recorded for an issued item
//
// only its two digests reach the leaf
type Args struct {
	Name                 string              `json:"name"`
	Symbol               string              `json:"symbol"`
	URI                  string              `json:"uri"`
	SellerFeeBasisPoints uint16              `json:"sellerFeeBasisPoints"`
	PrimarySaleHappened  bool                `json:"primarySaleHappened"`
	IsMutable            bool                `json:"isMutable"`
	TokenStandard        TokenStandard       `json:"tokenStandard"`
	TokenProgramVersion  TokenProgramVersion `json:"tokenProgramVersion"`
	Creators             []Creator           `json:"creators"`
}

// DefaultAttributes - the fixed bundle used for every issued item
//
// the collection's tree authority is the only, unverified, creator
func DefaultAttributes(treeAuthority *account.Account) *Args {
	return &Args{
		Name:                 "cNFT",
		Symbol:               "cNFT",
		URI:                  "https://c.nft",
		SellerFeeBasisPoints: 500,
		PrimarySaleHappened:  true,
		IsMutable:            true,
		TokenStandard:        NonFungible,
		TokenProgramVersion:  Original,
		Creators: []Creator{
			{
				Address:  treeAuthority,
				Verified: false,
				Share:    100,
			},
		},
	}
}

// Validate - check limits and creator shares
func (args *Args) Validate() error {
	if nil == args {
		return fault.InvalidMetadata
	}
	if !utf8.ValidString(args.Name) || len(args.Name) > MaxNameLength {
		return fault.InvalidMetadata
	}
	if !utf8.ValidString(args.Symbol) || len(args.Symbol) > MaxSymbolLength {
		return fault.InvalidMetadata
	}
	if !utf8.ValidString(args.URI) || len(args.URI) > MaxURILength {
		return fault.InvalidMetadata
	}
	if args.SellerFeeBasisPoints > MaxSellerFeeBasis {
		return fault.InvalidMetadata
	}
	if args.TokenStandard > NonFungibleEdition || args.TokenProgramVersion > Token2022 {
		return fault.InvalidMetadata
	}
	if len(args.Creators) > MaxCreators {
		return fault.InvalidMetadata
	}

	if 0 == len(args.Creators) {
		return nil
	}
	total := 0
	for i, c := range args.Creators {
		if nil == c.Address || nil == c.Address.AccountInterface {
			return fault.InvalidMetadata
		}
		for _, other := range args.Creators[:i] {
			if c.Address.Equal(other.Address) {
				return fault.InvalidMetadata
			}
		}
		total += int(c.Share)
	}
	if totalCreatorShare != total {
		return fault.InvalidMetadata
	}
	return nil
}

// Pack - canonical encoding of the whole bundle
func (args *Args) Pack() util.Packed {
	p := util.Packed{}.
		Bytes([]byte(args.Name)).
		Bytes([]byte(args.Symbol)).
		Bytes([]byte(args.URI)).
		Varint(uint64(args.SellerFeeBasisPoints)).
		Bool(args.PrimarySaleHappened).
		Bool(args.IsMutable).
		Varint(uint64(args.TokenStandard)).
		Varint(uint64(args.TokenProgramVersion)).
		Varint(uint64(len(args.Creators)))
	for _, c := range args.Creators {
		p = p.Fixed(c.Address.Bytes()).Bool(c.Verified).Varint(uint64(c.Share))
	}
	return p
}

// DataHash - digest committing to the bundle
//
// the royalty rate is hashed again outside the bundle so it can be
// checked without the full metadata
func (args *Args) DataHash() merkle.Digest {
	bundle := merkle.NewDigest(args.Pack())
	fee := util.Packed{}.Varint(uint64(args.SellerFeeBasisPoints))
	return merkle.NewDigestOf(bundle[:], fee)
}

// CreatorHash - digest committing to the creator list alone
func (args *Args) CreatorHash() merkle.Digest {
	p := util.Packed{}.Varint(creatorPackedVersion)
	for _, c := range args.Creators {
		p = p.Fixed(c.Address.Bytes()).Bool(c.Verified).Varint(uint64(c.Share))
	}
	return merkle.NewDigest(p)
}

// Override - configured replacements for the default bundle
//
// empty strings and a negative fee keep the default value
type Override struct {
	Name                 string `gluamapper:"name" json:"name"`
	Symbol               string `gluamapper:"symbol" json:"symbol"`
	URI                  string `gluamapper:"uri" json:"uri"`
	SellerFeeBasisPoints int    `gluamapper:"seller_fee_basis_points" json:"sellerFeeBasisPoints"`
}

// IsEmpty - true if nothing would be replaced
func (o *Override) IsEmpty() bool {
	return nil == o || ("" == o.Name && "" == o.Symbol && "" == o.URI && o.SellerFeeBasisPoints < 0)
}

// With - a copy of args with the override applied
func (args *Args) With(o *Override) *Args {
	a := *args
	a.Creators = append([]Creator(nil), args.Creators...)
	if o.IsEmpty() {
		return &a
	}
	if "" != o.Name {
		a.Name = o.Name
	}
	if "" != o.Symbol {
		a.Symbol = o.Symbol
	}
	if "" != o.URI {
		a.URI = o.URI
	}
	if o.SellerFeeBasisPoints >= 0 {
		a.SellerFeeBasisPoints = uint16(o.SellerFeeBasisPoints)
	}
	return &a
}
