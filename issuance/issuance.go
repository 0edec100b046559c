// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package issuance - mint items into a collection using the tree
// authority's signing right
package issuance

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/metadata"
	"github.com/bitmark-inc/stakingd/storage"
)

// ItemRef - where an issued item lives and what its leaf commits to
type ItemRef struct {
	Tree        *account.Account `json:"tree"`
	AssetId     *account.Account `json:"assetId"`
	Index       uint32           `json:"index"`
	Nonce       uint64           `json:"nonce"`
	DataHash    merkle.Digest    `json:"dataHash"`
	CreatorHash merkle.Digest    `json:"creatorHash"`
}

// Service - issues items
type Service struct {
	log         *logger.L
	compression compression.Service
	deriver     *derivation.Deriver
}

// New - create an issuance service acting as the deriver's program
func New(log *logger.L, svc compression.Service, deriver *derivation.Deriver) *Service {
	return &Service{
		log:         log,
		compression: svc,
		deriver:     deriver,
	}
}

// Attributes - the default bundle for a collection
func (s *Service) Attributes(collection *account.Account) (*metadata.Args, error) {
	authority, err := s.deriver.TreeAuthority(collection)
	if nil != err {
		return nil, err
	}
	return metadata.DefaultAttributes(authority.Address), nil
}

// IssueItem - mint an item with the default attributes to holder
func (s *Service) IssueItem(trx storage.Transaction, collection *account.Account, holder *account.Account) (*ItemRef, *compression.Event, error) {
	return s.IssueItemWith(trx, collection, holder, nil)
}

// IssueItemWith - mint an item with the given attributes to holder
//
// nil attributes select the default bundle
func (s *Service) IssueItemWith(trx storage.Transaction, collection *account.Account, holder *account.Account, attributes *metadata.Args) (*ItemRef, *compression.Event, error) {
	if nil == trx || nil == collection || nil == holder || nil == holder.AccountInterface {
		return nil, nil, fault.MissingParameters
	}

	authority, err := s.deriver.TreeAuthority(collection)
	if nil != err {
		return nil, nil, err
	}
	if nil == attributes {
		attributes = metadata.DefaultAttributes(authority.Address)
	}

	event, err := s.compression.Append(trx, s.deriver.ProgramId(), collection, holder, attributes, authority)
	if nil != err {
		return nil, nil, err
	}

	leaf := event.Leaf
	s.log.Infof("issue: %s  index: %d  nonce: %d  holder: %s", collection, event.Index, leaf.Nonce, holder)

	return &ItemRef{
		Tree:        collection,
		AssetId:     leaf.AssetId,
		Index:       event.Index,
		Nonce:       leaf.Nonce,
		DataHash:    leaf.DataHash,
		CreatorHash: leaf.CreatorHash,
	}, event, nil
}
