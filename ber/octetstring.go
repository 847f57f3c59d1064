package ber

// EncodeOctetString renders a full OCTET STRING TLV.
func EncodeOctetString(value []byte) []byte {
	return EncodeTLV(TagOctetString, value)
}

// DecodeOctetString decodes an OCTET STRING TLV from the front of data.
func DecodeOctetString(data []byte) (value []byte, rest []byte, err error) {
	raw, rest, err := DecodeTLV(data)
	if err != nil {
		return nil, nil, err
	}
	if raw.Tag != TagOctetString {
		return nil, nil, ErrInvalidTag
	}
	return raw.Content, rest, nil
}

// EncodeApplicationOctetString renders a full TLV for an application-tagged
// type whose content is an implicit OCTET STRING (IpAddress, Opaque).
func EncodeApplicationOctetString(tag Tag, value []byte) []byte {
	return EncodeTLV(tag, value)
}

// DecodeApplicationOctetString decodes an application-tagged implicit
// OCTET STRING TLV, verifying the tag matches want.
func DecodeApplicationOctetString(data []byte, want Tag) (value []byte, rest []byte, err error) {
	raw, rest, err := DecodeTLV(data)
	if err != nil {
		return nil, nil, err
	}
	if raw.Tag != want {
		return nil, nil, ErrInvalidTag
	}
	return raw.Content, rest, nil
}
