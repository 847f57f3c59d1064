package snmpval

import (
	"github.com/damianoneill/snmpkit/ber"
)

// Decode reads one tagged value from the front of data, dispatching on its
// BER tag to produce the concrete Value type the tag identifies. It never
// infers a type from content — an unrecognised tag is an error, not a
// best-effort fallback.
func Decode(data []byte) (value Value, rest []byte, err error) {
	raw, rest, err := ber.DecodeTLV(data)
	if err != nil {
		return nil, nil, err
	}

	switch raw.Tag {
	case ber.TagInteger:
		n, innerErr := ber.DecodeIntegerValue(raw.Content)
		if innerErr != nil {
			return nil, nil, innerErr
		}
		return Integer32(n), rest, nil

	case ber.TagOctetString:
		return OctetString(append([]byte(nil), raw.Content...)), rest, nil

	case ber.TagNull:
		if len(raw.Content) != 0 {
			return nil, nil, ber.ErrInvalidLength
		}
		return Null{}, rest, nil

	case ber.TagOID:
		components, innerErr := ber.DecodeOIDValue(raw.Content)
		if innerErr != nil {
			return nil, nil, innerErr
		}
		return ObjectIdentifier(components), rest, nil

	case ber.TagIPAddress:
		if len(raw.Content) != 4 {
			return nil, nil, ErrInvalidIPAddress
		}
		var ip IPAddress
		copy(ip[:], raw.Content)
		return ip, rest, nil

	case ber.TagCounter32:
		n, innerErr := ber.DecodeUnsignedValue(raw.Content)
		if innerErr != nil {
			return nil, nil, innerErr
		}
		return Counter32(n), rest, nil

	case ber.TagGauge32:
		n, innerErr := ber.DecodeUnsignedValue(raw.Content)
		if innerErr != nil {
			return nil, nil, innerErr
		}
		return Gauge32(n), rest, nil

	case ber.TagTimeTicks:
		n, innerErr := ber.DecodeUnsignedValue(raw.Content)
		if innerErr != nil {
			return nil, nil, innerErr
		}
		return TimeTicks(n), rest, nil

	case ber.TagOpaque:
		return Opaque(append([]byte(nil), raw.Content...)), rest, nil

	case ber.TagCounter64:
		n, innerErr := ber.DecodeUnsignedValue(raw.Content)
		if innerErr != nil {
			return nil, nil, innerErr
		}
		return Counter64(n), rest, nil

	case ber.TagNoSuchObject:
		return NoSuchObject{}, rest, nil

	case ber.TagNoSuchInstance:
		return NoSuchInstance{}, rest, nil

	case ber.TagEndOfMibView:
		return EndOfMibView{}, rest, nil
	}

	return nil, nil, ber.ErrInvalidTag
}
