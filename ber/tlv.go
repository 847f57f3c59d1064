package ber

// EncodeTLV wraps content in a tag/length/value triple.
func EncodeTLV(tag Tag, content []byte) []byte {
	out := make([]byte, 0, 2+len(content))
	out = append(out, byte(tag))
	out = append(out, EncodeLength(len(content))...)
	return append(out, content...)
}

// EncodeSequence wraps content in a universal SEQUENCE tag.
func EncodeSequence(content []byte) []byte {
	return EncodeTLV(TagSequence, content)
}

// RawValue is a decoded tag/length/value triple whose content has not yet
// been interpreted. It is the building block every higher-layer decoder
// (snmpval, pdu) composes.
type RawValue struct {
	Tag     Tag
	Content []byte
}

// DecodeTLV reads one tag/length/value triple from the front of data and
// returns it along with the remainder of data following the value.
func DecodeTLV(data []byte) (raw RawValue, rest []byte, err error) {
	if len(data) == 0 {
		return RawValue{}, nil, ErrInsufficientContent
	}

	tag := Tag(data[0])
	length, afterLength, err := DecodeLength(data[1:])
	if err != nil {
		return RawValue{}, nil, err
	}
	if length > len(afterLength) {
		return RawValue{}, nil, ErrInsufficientContent
	}

	return RawValue{Tag: tag, Content: afterLength[:length]}, afterLength[length:], nil
}

// DecodeSequence decodes a SEQUENCE TLV and returns its content bytes (the
// concatenated encoding of its elements) along with what follows it.
func DecodeSequence(data []byte) (content []byte, rest []byte, err error) {
	raw, rest, err := DecodeTLV(data)
	if err != nil {
		return nil, nil, err
	}
	if raw.Tag != TagSequence {
		return nil, nil, ErrInvalidTag
	}
	return raw.Content, rest, nil
}
