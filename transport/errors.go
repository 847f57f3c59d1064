package transport

import "errors"

// Errors returned by socket operations.
var (
	ErrPayloadTooLarge = errors.New("transport: payload exceeds snmp message size ceiling")
	ErrSocketClosed    = errors.New("transport: socket is closed")
)
