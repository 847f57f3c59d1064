// Package snmpval defines the SNMP value type system: the tagged union of
// scalar types a varbind can carry, including the SNMPv2c exception values.
// A Value's Go type IS its SNMP type — there is no separate type field to
// fall out of sync, and no code path infers a type from a value; the codec
// always knows which concrete Value to decode into from the wire tag alone.
package snmpval

import (
	"fmt"

	"github.com/damianoneill/snmpkit/ber"
	"github.com/damianoneill/snmpkit/oid"
)

// Value is implemented by every SNMP scalar type. It is a closed set —
// Encode/Decode in this package are the only way to produce or consume one,
// so a decoded varbind's Value always carries the type bit-for-bit as it
// arrived on the wire.
type Value interface {
	// Tag identifies the BER tag this value encodes under.
	Tag() ber.Tag
	// Encode renders the full tag/length/value TLV for this value.
	Encode() []byte
	// String renders a human-readable form of the value.
	String() string

	sealed()
}

// IsException reports whether v is one of the SNMPv2c per-varbind exceptions
// (noSuchObject / noSuchInstance / endOfMibView).
func IsException(v Value) bool {
	switch v.(type) {
	case NoSuchObject, NoSuchInstance, EndOfMibView:
		return true
	}
	return false
}

// Integer32 is a signed 32-bit SNMP INTEGER.
type Integer32 int32

func (Integer32) sealed()          {}
func (Integer32) Tag() ber.Tag     { return ber.TagInteger }
func (v Integer32) Encode() []byte { return ber.EncodeInteger(int64(v)) }
func (v Integer32) String() string { return fmt.Sprintf("%d", int32(v)) }

// OctetString is an arbitrary byte string.
type OctetString []byte

func (OctetString) sealed()          {}
func (OctetString) Tag() ber.Tag     { return ber.TagOctetString }
func (v OctetString) Encode() []byte { return ber.EncodeOctetString([]byte(v)) }
func (v OctetString) String() string { return string(v) }

// Null is the SNMP NULL value, used as the placeholder value of request
// varbinds.
type Null struct{}

func (Null) sealed()          {}
func (Null) Tag() ber.Tag     { return ber.TagNull }
func (Null) Encode() []byte   { return ber.EncodeNull() }
func (Null) String() string   { return "" }

// ObjectIdentifier carries an OID value, e.g. as the result of a GetNext.
type ObjectIdentifier oid.OID

func (ObjectIdentifier) sealed()      {}
func (ObjectIdentifier) Tag() ber.Tag { return ber.TagOID }
func (v ObjectIdentifier) Encode() []byte {
	encoded, err := ber.EncodeOID([]int(v))
	if err != nil {
		// A Value constructed through Decode or the typed constructors in
		// this package is always well-formed; only a caller bypassing both
		// (e.g. an invalid literal) reaches this.
		panic(err)
	}
	return encoded
}
func (v ObjectIdentifier) String() string { return oid.OID(v).String() }

// IPAddress is a 4-octet IPv4 address, application tag 0 implicit OCTET
// STRING.
type IPAddress [4]byte

func (IPAddress) sealed()      {}
func (IPAddress) Tag() ber.Tag { return ber.TagIPAddress }
func (v IPAddress) Encode() []byte {
	return ber.EncodeApplicationOctetString(ber.TagIPAddress, v[:])
}
func (v IPAddress) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v[0], v[1], v[2], v[3])
}

// Counter32 is a monotonically increasing 32-bit counter that wraps at 2^32.
type Counter32 uint32

func (Counter32) sealed()      {}
func (Counter32) Tag() ber.Tag { return ber.TagCounter32 }
func (v Counter32) Encode() []byte {
	return ber.EncodeUnsignedApplication(ber.TagCounter32, uint64(v))
}
func (v Counter32) String() string { return fmt.Sprintf("%d", uint32(v)) }

// Gauge32 is a non-monotonic 32-bit value, clamped at 2^32-1.
type Gauge32 uint32

func (Gauge32) sealed()      {}
func (Gauge32) Tag() ber.Tag { return ber.TagGauge32 }
func (v Gauge32) Encode() []byte {
	return ber.EncodeUnsignedApplication(ber.TagGauge32, uint64(v))
}
func (v Gauge32) String() string { return fmt.Sprintf("%d", uint32(v)) }

// ClampGauge32 converts an arbitrary non-negative magnitude to a Gauge32,
// clamping at 2^32-1 rather than wrapping, matching real agent behaviour
// for gauges (unlike counters, which wrap).
func ClampGauge32(v uint64) Gauge32 {
	const max = uint64(1<<32 - 1)
	if v > max {
		v = max
	}
	return Gauge32(v)
}

// Unsigned32 is a non-monotonic 32-bit value sharing Gauge32's wire tag,
// kept as a distinct Go type for values a caller constructs. The wire
// carries no difference between the two, so Decode always yields Gauge32
// for that tag.
type Unsigned32 uint32

func (Unsigned32) sealed()      {}
func (Unsigned32) Tag() ber.Tag { return ber.TagGauge32 }
func (v Unsigned32) Encode() []byte {
	return ber.EncodeUnsignedApplication(ber.TagGauge32, uint64(v))
}
func (v Unsigned32) String() string { return fmt.Sprintf("%d", uint32(v)) }

// TimeTicks is a count of hundredths of a second since some epoch defined
// by the object being read.
type TimeTicks uint32

func (TimeTicks) sealed()      {}
func (TimeTicks) Tag() ber.Tag { return ber.TagTimeTicks }
func (v TimeTicks) Encode() []byte {
	return ber.EncodeUnsignedApplication(ber.TagTimeTicks, uint64(v))
}
func (v TimeTicks) String() string { return FormatTimeTicks(uint32(v)) }

// FormatTimeTicks renders hundredths of a second as "D days H hours M
// minutes S.CC seconds", matching the conventional SNMP display form.
func FormatTimeTicks(ticks uint32) string {
	centis := ticks % 100
	totalSeconds := ticks / 100
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	totalHours := totalMinutes / 60
	hours := totalHours % 24
	days := totalHours / 24

	return fmt.Sprintf("%d days %d hours %d minutes %d.%02d seconds", days, hours, minutes, seconds, centis)
}

// Opaque wraps an arbitrary-format application-specific byte string.
type Opaque []byte

func (Opaque) sealed()      {}
func (Opaque) Tag() ber.Tag { return ber.TagOpaque }
func (v Opaque) Encode() []byte {
	return ber.EncodeApplicationOctetString(ber.TagOpaque, []byte(v))
}
func (v Opaque) String() string { return fmt.Sprintf("%x", []byte(v)) }

// Counter64 is a monotonically increasing 64-bit counter, SNMPv2c only.
type Counter64 uint64

func (Counter64) sealed()      {}
func (Counter64) Tag() ber.Tag { return ber.TagCounter64 }
func (v Counter64) Encode() []byte {
	return ber.EncodeUnsignedApplication(ber.TagCounter64, uint64(v))
}
func (v Counter64) String() string { return fmt.Sprintf("%d", uint64(v)) }

// NoSuchObject indicates the requested object does not exist at the agent.
type NoSuchObject struct{}

func (NoSuchObject) sealed()        {}
func (NoSuchObject) Tag() ber.Tag   { return ber.TagNoSuchObject }
func (NoSuchObject) Encode() []byte { return ber.EncodeExceptionValue(ber.TagNoSuchObject) }
func (NoSuchObject) String() string { return "noSuchObject" }

// NoSuchInstance indicates the object exists but this instance does not.
type NoSuchInstance struct{}

func (NoSuchInstance) sealed()        {}
func (NoSuchInstance) Tag() ber.Tag   { return ber.TagNoSuchInstance }
func (NoSuchInstance) Encode() []byte { return ber.EncodeExceptionValue(ber.TagNoSuchInstance) }
func (NoSuchInstance) String() string { return "noSuchInstance" }

// EndOfMibView indicates a GetNext/GetBulk walked off the end of the MIB
// view accessible to the requester.
type EndOfMibView struct{}

func (EndOfMibView) sealed()        {}
func (EndOfMibView) Tag() ber.Tag   { return ber.TagEndOfMibView }
func (EndOfMibView) Encode() []byte { return ber.EncodeExceptionValue(ber.TagEndOfMibView) }
func (EndOfMibView) String() string { return "endOfMibView" }
