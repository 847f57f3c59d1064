// Package ber implements the subset of ASN.1 Basic Encoding Rules that the
// SNMP v1/v2c wire format requires: primitive INTEGER, OCTET STRING, NULL and
// OBJECT IDENTIFIER, plus constructed SEQUENCE framing and the custom
// application/context-specific tags SNMP layers on top of them.
//
// Every decoder returns the decoded value together with the unconsumed
// remainder of the input, so callers can chain decodes across a SEQUENCE
// without re-slicing by hand.
package ber

import "errors"

// Errors returned by the codec. Each corresponds to one entry in the
// malformed-wire-data taxonomy.
var (
	ErrInvalidTag                  = errors.New("ber: invalid tag")
	ErrInvalidLength               = errors.New("ber: invalid length")
	ErrLengthTooLarge              = errors.New("ber: length too large")
	ErrInsufficientContent         = errors.New("ber: insufficient content")
	ErrIndefiniteLengthUnsupported = errors.New("ber: indefinite length unsupported")
	ErrInvalidOID                  = errors.New("ber: invalid oid")
	ErrTruncatedSubidentifier      = errors.New("ber: truncated subidentifier")
	ErrEmptyInteger                = errors.New("ber: empty integer")
	ErrPayloadTooLarge             = errors.New("ber: payload exceeds snmp message size ceiling")
)
