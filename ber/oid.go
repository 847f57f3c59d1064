package ber

// encodeSubidentifier renders one OID subidentifier in base-128 with
// continuation bits: every octet except the last has bit 7 set.
func encodeSubidentifier(x uint32) []byte {
	if x < 0x80 {
		return []byte{byte(x)}
	}

	var groups []byte
	for v := x; v > 0; v >>= 7 {
		groups = append([]byte{byte(v & 0x7F)}, groups...)
	}
	for i := 0; i < len(groups)-1; i++ {
		groups[i] |= 0x80
	}
	return groups
}

// encodeOIDContent renders the OID content octets (after tag+length) for a
// sequence of subidentifiers of length >= 2. The first two components are
// merged into a single subidentifier as 40*first + second.
func encodeOIDContent(components []int) ([]byte, error) {
	if len(components) < 2 {
		return nil, ErrInvalidOID
	}
	if components[0] < 0 || components[0] > 2 {
		return nil, ErrInvalidOID
	}
	if components[0] < 2 && (components[1] < 0 || components[1] >= 40) {
		return nil, ErrInvalidOID
	}

	content := encodeSubidentifier(uint32(40*components[0] + components[1]))
	for _, c := range components[2:] {
		if c < 0 {
			return nil, ErrInvalidOID
		}
		content = append(content, encodeSubidentifier(uint32(c))...)
	}
	return content, nil
}

// EncodeOID renders a full OBJECT IDENTIFIER TLV for components.
func EncodeOID(components []int) ([]byte, error) {
	content, err := encodeOIDContent(components)
	if err != nil {
		return nil, err
	}
	return EncodeTLV(TagOID, content), nil
}

// decodeOIDContent is the exact inverse of encodeOIDContent.
func decodeOIDContent(content []byte) ([]int, error) {
	if len(content) == 0 {
		return nil, ErrInvalidOID
	}

	var subids []uint32
	var current uint32
	inProgress := false
	for _, b := range content {
		current = current<<7 | uint32(b&0x7F)
		inProgress = true
		if b&0x80 == 0 {
			subids = append(subids, current)
			current = 0
			inProgress = false
		}
	}
	if inProgress {
		return nil, ErrTruncatedSubidentifier
	}

	first := subids[0] / 40
	second := subids[0] % 40
	if first > 2 {
		// 40*2 + x can legitimately produce first==2 with a large second
		// component; per X.690, when first would be >2 the true first
		// component is 2 and the remainder all belongs to second.
		first = 2
		second = subids[0] - 80
	}

	components := make([]int, 0, len(subids)+1)
	components = append(components, int(first), int(second))
	for _, s := range subids[1:] {
		components = append(components, int(s))
	}
	return components, nil
}

// DecodeOIDValue interprets content (the bytes after tag+length) as a
// sequence of OID components, without requiring a full TLV.
func DecodeOIDValue(content []byte) ([]int, error) {
	return decodeOIDContent(content)
}

// DecodeOID decodes an OBJECT IDENTIFIER TLV from the front of data.
func DecodeOID(data []byte) (components []int, rest []byte, err error) {
	raw, rest, err := DecodeTLV(data)
	if err != nil {
		return nil, nil, err
	}
	if raw.Tag != TagOID {
		return nil, nil, ErrInvalidTag
	}
	components, err = decodeOIDContent(raw.Content)
	return components, rest, err
}
