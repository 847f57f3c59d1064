package snmpval

import "math"

// NewCounter32 validates v is within [0, 2^32-1] before constructing a
// Counter32. Use this at boundaries where the magnitude arrives as a wider
// integer type (e.g. parsed config, a simulator's object store) rather than
// already being a uint32.
func NewCounter32(v uint64) (Counter32, error) {
	if v > math.MaxUint32 {
		return 0, ErrCounterRange
	}
	return Counter32(v), nil
}

// NewGauge32 validates v is within [0, 2^32-1] before constructing a
// Gauge32.
func NewGauge32(v uint64) (Gauge32, error) {
	if v > math.MaxUint32 {
		return 0, ErrCounterRange
	}
	return Gauge32(v), nil
}

// NewUnsigned32 validates v is within [0, 2^32-1] before constructing an
// Unsigned32.
func NewUnsigned32(v uint64) (Unsigned32, error) {
	if v > math.MaxUint32 {
		return 0, ErrCounterRange
	}
	return Unsigned32(v), nil
}

// NewTimeTicks validates v is within [0, 2^32-1] before constructing a
// TimeTicks.
func NewTimeTicks(v uint64) (TimeTicks, error) {
	if v > math.MaxUint32 {
		return 0, ErrCounterRange
	}
	return TimeTicks(v), nil
}

// NewIPAddress validates octets has exactly 4 elements before constructing
// an IPAddress.
func NewIPAddress(octets []byte) (IPAddress, error) {
	if len(octets) != 4 {
		return IPAddress{}, ErrInvalidIPAddress
	}
	var ip IPAddress
	copy(ip[:], octets)
	return ip, nil
}
