// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type StaleError GenericError

// custody and staking errors - keep in alphabetic order
var (
	AlreadyInitialised = ExistsError("already initialised")
	AlreadyStaked      = ExistsError("already staked")
	CollectionFull     = LengthError("collection full")
	InvalidCapacity    = InvalidError("invalid capacity")
	NoActiveStake      = NotFoundError("no active stake")
	NotOwner           = AuthorisationError("not owner")
	NotStaker          = AuthorisationError("not staker")
	StaleProof         = StaleError("stale proof")
	Unauthorised       = AuthorisationError("unauthorised")
)

// common errors - keep in alphabetic order
var (
	AccountAlreadyExists         = ExistsError("account already exists")
	AccountNotAllocated          = NotFoundError("account not allocated")
	CannotDecodeAccount          = RecordError("cannot decode account")
	CannotDecodeSeed             = RecordError("cannot decode seed")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = ProcessError("checksum mismatch")
	CollectionNotFound           = NotFoundError("collection not found")
	CryptoFailed                 = ProcessError("crypto failed")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DerivedAccountCannotSign     = AuthorisationError("derived account cannot sign")
	IdentityNameAlreadyExists    = ExistsError("identity name already exists")
	IdentityNameNotFound         = NotFoundError("identity name not found")
	InvalidAccountSize           = LengthError("invalid account size")
	InvalidConfiguration         = InvalidError("invalid configuration")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIPAddress             = InvalidError("invalid IP address")
	InvalidItem                  = InvalidError("invalid item")
	InvalidKeyLength             = LengthError("invalid key length")
	InvalidKeyType               = InvalidError("invalid key type")
	InvalidLeafIndex             = InvalidError("invalid leaf index")
	InvalidMetadata              = InvalidError("invalid metadata")
	InvalidPasswordLength        = InvalidError("invalid password length")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidProof                 = InvalidError("invalid proof")
	InvalidProofLength           = LengthError("invalid proof length")
	InvalidSeedHeader            = InvalidError("invalid seed header")
	InvalidSeedLength            = LengthError("invalid seed length")
	InvalidSeeds                 = InvalidError("invalid derivation seeds")
	InvalidSignature             = InvalidError("invalid signature")
	ItemNotFound                 = NotFoundError("item not found")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MissingParameters            = InvalidError("missing parameters")
	NotAvailableInReadOnlyMode   = ProcessError("not available in read-only mode")
	NotDerivedAddress            = InvalidError("address is not derived")
	NotInitialised               = NotFoundError("not initialised")
	NotLink                      = InvalidError("not a link")
	NotPrivateKey                = InvalidError("not a private key")
	NotPublicKey                 = InvalidError("not a public key")
	NoViableBump                 = ProcessError("no viable derivation bump")
	PasswordMismatch             = InvalidError("password mismatch")
	RateLimiting                 = InvalidError("rate limiting")
	RecordHasExpired             = RecordError("record has expired")
	TransactionNotInProgress     = ProcessError("transaction not in progress")
	TruncatedRecord              = RecordError("truncated record")
	WrongPassword                = InvalidError("wrong password")
)

// the error interface methods
func (e GenericError) Error() string       { return string(e) }
func (e AuthorisationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e LengthError) Error() string        { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e RecordError) Error() string        { return string(e) }
func (e StaleError) Error() string         { return string(e) }

// determine the class of an error
func IsErrAuthorisation(e error) bool { _, ok := e.(AuthorisationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool        { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool        { _, ok := e.(RecordError); return ok }
func IsErrStale(e error) bool         { _, ok := e.(StaleError); return ok }
