package snmpval

import "errors"

// Validation errors for value construction (§4.2).
var (
	ErrInvalidIPAddress = errors.New("snmpval: ip address must be exactly 4 octets")
	ErrCounterRange     = errors.New("snmpval: counter/gauge/timeticks value out of range")
)
