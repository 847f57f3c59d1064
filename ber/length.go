package ber

// EncodeLength renders n using BER short form (a single octet, 0..127) when
// it fits, and long form otherwise: a leading octet with bit 7 set whose low
// 7 bits count the following length octets (1-4, big-endian, minimal).
// Indefinite length (0x80 alone) is never produced.
func EncodeLength(n int) []byte {
	if n < 0 {
		panic("ber: negative length")
	}
	if n < 0x80 {
		return []byte{byte(n)}
	}

	var octets []byte
	for v := n; v > 0; v >>= 8 {
		octets = append([]byte{byte(v)}, octets...)
	}
	return append([]byte{0x80 | byte(len(octets))}, octets...)
}

// DecodeLength parses a BER length field from the front of data, returning
// the decoded length and the remaining bytes. Indefinite length (0x80) and
// length fields using more than 4 octets are rejected.
func DecodeLength(data []byte) (length int, rest []byte, err error) {
	if len(data) == 0 {
		return 0, nil, ErrInsufficientContent
	}

	first := data[0]
	rest = data[1:]

	if first&0x80 == 0 {
		return int(first), rest, nil
	}

	numOctets := int(first & 0x7F)
	if numOctets == 0 {
		return 0, nil, ErrIndefiniteLengthUnsupported
	}
	if numOctets > 4 {
		return 0, nil, ErrLengthTooLarge
	}
	if len(rest) < numOctets {
		return 0, nil, ErrInsufficientContent
	}

	length = 0
	for i := 0; i < numOctets; i++ {
		length = length<<8 | int(rest[i])
	}
	if length < 0 {
		// Overflowed a 31-bit int on a 4-octet length field.
		return 0, nil, ErrLengthTooLarge
	}

	return length, rest[numOctets:], nil
}
