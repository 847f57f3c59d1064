package ber

// encodeIntegerContent renders n as minimal two's-complement BER INTEGER
// content (the bytes after tag+length). Zero encodes as a single 0x00
// octet. A positive value whose leading octet would otherwise have its high
// bit set gets a 0x00 prepended, so decoders never mistake it for a
// negative number.
func encodeIntegerContent(n int64) []byte {
	if n == 0 {
		return []byte{0x00}
	}

	if n > 0 {
		return encodeUnsignedMagnitude(uint64(n))
	}

	// Negative: emit the smallest two's-complement representation whose
	// leading octet's sign bit is set.
	var octets []byte
	v := n
	for {
		octets = append([]byte{byte(v)}, octets...)
		if v >= -128 && v <= 127 {
			break
		}
		v >>= 8
	}
	return octets
}

// encodeUnsignedMagnitude renders n (known non-negative) as minimal
// two's-complement content: the fewest big-endian octets that represent n,
// with a leading 0x00 prepended only if the top bit of the first magnitude
// octet would otherwise be set.
func encodeUnsignedMagnitude(n uint64) []byte {
	if n == 0 {
		return []byte{0x00}
	}

	var octets []byte
	for v := n; v > 0; v >>= 8 {
		octets = append([]byte{byte(v)}, octets...)
	}
	if octets[0]&0x80 != 0 {
		octets = append([]byte{0x00}, octets...)
	}
	return octets
}

// EncodeInteger renders a full INTEGER TLV for n.
func EncodeInteger(n int64) []byte {
	return EncodeTLV(TagInteger, encodeIntegerContent(n))
}

// decodeIntegerContent interprets raw two's-complement octets as a signed
// integer, sign-extending from the leading octet's high bit.
func decodeIntegerContent(content []byte) (int64, error) {
	if len(content) == 0 {
		return 0, ErrEmptyInteger
	}

	var v int64
	if content[0]&0x80 != 0 {
		v = -1
	}
	for _, b := range content {
		v = v<<8 | int64(b)
	}
	return v, nil
}

// DecodeIntegerValue interprets content (the bytes after tag+length) as a
// signed two's-complement integer, without requiring a full TLV.
func DecodeIntegerValue(content []byte) (int64, error) {
	return decodeIntegerContent(content)
}

// DecodeInteger decodes an INTEGER TLV from the front of data.
func DecodeInteger(data []byte) (value int64, rest []byte, err error) {
	raw, rest, err := DecodeTLV(data)
	if err != nil {
		return 0, nil, err
	}
	if raw.Tag != TagInteger {
		return 0, nil, ErrInvalidTag
	}
	value, err = decodeIntegerContent(raw.Content)
	return value, rest, err
}

// EncodeUnsignedApplication renders an application-tagged non-negative
// integer (Counter32, Gauge32/Unsigned32, TimeTicks, Counter64). SNMP's
// unsigned application types use the same minimal two's-complement content
// encoding as a non-negative INTEGER, just under a different tag, so full
// uint64 magnitude (including values above math.MaxInt64, for Counter64) is
// handled directly rather than round-tripping through int64.
func EncodeUnsignedApplication(tag Tag, n uint64) []byte {
	return EncodeTLV(tag, encodeUnsignedMagnitude(n))
}

// decodeUnsignedContent interprets raw two's-complement octets as an
// unsigned magnitude (no sign extension — SNMP's unsigned application types
// are never negative on the wire, but a spurious leading 0x00 is tolerated).
func decodeUnsignedContent(content []byte) (uint64, error) {
	if len(content) == 0 {
		return 0, ErrEmptyInteger
	}
	var v uint64
	for _, b := range content {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// DecodeUnsignedValue interprets content (the bytes after tag+length) as an
// unsigned magnitude, without requiring a full TLV.
func DecodeUnsignedValue(content []byte) (uint64, error) {
	return decodeUnsignedContent(content)
}

// DecodeUnsignedApplication decodes an application-tagged unsigned integer
// TLV, verifying the tag matches want.
func DecodeUnsignedApplication(data []byte, want Tag) (value uint64, rest []byte, err error) {
	raw, rest, err := DecodeTLV(data)
	if err != nil {
		return 0, nil, err
	}
	if raw.Tag != want {
		return 0, nil, ErrInvalidTag
	}
	value, err = decodeUnsignedContent(raw.Content)
	return value, rest, err
}
