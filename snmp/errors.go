package snmp

import "errors"

// Errors surfaced by the single-target driver. Wire-level errors from the
// engine/pdu/ber layers (timeout, codec errors, protocol error-statuses)
// propagate unwrapped or wrapped with github.com/pkg/errors context; these
// are the driver's own validation and exception-surfacing errors.
var (
	ErrEmptyOIDs          = errors.New("snmp: oid list must not be empty")
	ErrNoSuchObject       = errors.New("snmp: no such object")
	ErrNoSuchInstance     = errors.New("snmp: no such instance")
	ErrEndOfMibView       = errors.New("snmp: end of mib view")
	ErrGetBulkRequiresV2c = errors.New("snmp: getbulk requires snmp v2c")
)
