package ber

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestEncodeLengthShortForm(t *testing.T) {
	assert.Equal(t, []byte{0x00}, EncodeLength(0))
	assert.Equal(t, []byte{0x7F}, EncodeLength(127))
}

func TestEncodeLengthLongForm(t *testing.T) {
	assert.Equal(t, []byte{0x81, 0x80}, EncodeLength(128))
	assert.Equal(t, []byte{0x82, 0x01, 0x00}, EncodeLength(256))
}

func TestDecodeLengthRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 127, 128, 255, 256, 65535, 1 << 20} {
		encoded := EncodeLength(n)
		decoded, rest, err := DecodeLength(encoded)
		assert.NoError(t, err)
		assert.Equal(t, n, decoded)
		assert.Empty(t, rest)
	}
}

func TestDecodeLengthRejectsIndefinite(t *testing.T) {
	_, _, err := DecodeLength([]byte{0x80})
	assert.ErrorIs(t, err, ErrIndefiniteLengthUnsupported)
}

func TestDecodeLengthRejectsOversizedField(t *testing.T) {
	_, _, err := DecodeLength([]byte{0x85, 1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrLengthTooLarge)
}

func TestDecodeLengthRejectsTruncated(t *testing.T) {
	_, _, err := DecodeLength([]byte{0x82, 0x01})
	assert.ErrorIs(t, err, ErrInsufficientContent)
}

func TestIntegerRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, 128, -128, -129, 255, 256, -256,
		1<<31 - 1, -(1 << 31), 1 << 40, -(1 << 40)}
	for _, v := range values {
		encoded := EncodeInteger(v)
		decoded, rest, err := DecodeInteger(encoded)
		assert.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Empty(t, rest)
	}
}

func TestIntegerCanonicalEncoding(t *testing.T) {
	tag := byte(TagInteger)
	// 127 fits in one octet with MSB clear: no padding.
	assert.Equal(t, []byte{tag, 0x01, 0x7F}, EncodeInteger(127))
	// 128 needs a leading zero octet so the sign bit isn't mistaken for negative.
	assert.Equal(t, []byte{tag, 0x02, 0x00, 0x80}, EncodeInteger(128))
	// -128 fits in one octet.
	assert.Equal(t, []byte{tag, 0x01, 0x80}, EncodeInteger(-128))
	// -129 requires two octets.
	assert.Equal(t, []byte{tag, 0x02, 0xFF, 0x7F}, EncodeInteger(-129))
	// Zero is a single 0x00 octet.
	assert.Equal(t, []byte{tag, 0x01, 0x00}, EncodeInteger(0))
}

func TestDecodeIntegerRejectsEmptyContent(t *testing.T) {
	_, _, err := DecodeInteger([]byte{byte(TagInteger), 0x00})
	assert.ErrorIs(t, err, ErrEmptyInteger)
}

func TestUnsignedApplicationRoundTripCounter64(t *testing.T) {
	values := []uint64{0, 1, 255, 256, 1<<32 - 1, 1 << 40, 1<<64 - 1}
	for _, v := range values {
		encoded := EncodeUnsignedApplication(TagCounter64, v)
		decoded, rest, err := DecodeUnsignedApplication(encoded, TagCounter64)
		assert.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Empty(t, rest)
	}
}

func TestUnsignedApplicationWrongTagRejected(t *testing.T) {
	encoded := EncodeUnsignedApplication(TagCounter32, 5)
	_, _, err := DecodeUnsignedApplication(encoded, TagGauge32)
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestOctetStringRoundTrip(t *testing.T) {
	for _, v := range [][]byte{{}, []byte("public"), []byte{0x00, 0xFF, 0x10}} {
		encoded := EncodeOctetString(v)
		decoded, rest, err := DecodeOctetString(encoded)
		assert.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Empty(t, rest)
	}
}

func TestNullRoundTrip(t *testing.T) {
	rest, err := DecodeNull(EncodeNull())
	assert.NoError(t, err)
	assert.Empty(t, rest)
}

func TestOIDMultibyteSubidentifier200(t *testing.T) {
	// Component 200 must encode to 0x81 0x48, never the single byte 0xC8.
	encoded, err := EncodeOID([]int{1, 3, 6, 1, 4, 1, 200})
	assert.NoError(t, err)

	// tag(1) + length(1) + content; content ends in the two 200-encoding octets.
	content := encoded[2:]
	assert.Equal(t, byte(0x81), content[len(content)-2])
	assert.Equal(t, byte(0x48), content[len(content)-1])

	decoded, rest, err := DecodeOID(encoded)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3, 6, 1, 4, 1, 200}, decoded)
	assert.Empty(t, rest)
}

func TestOIDRoundTrip(t *testing.T) {
	cases := [][]int{
		{1, 3, 6, 1, 2, 1, 1, 1, 0},
		{0, 0},
		{2, 999, 1, 2, 3},
		{1, 3, 6, 1, 4, 1, 200, 128, 16384, 2097151},
	}
	for _, c := range cases {
		encoded, err := EncodeOID(c)
		assert.NoError(t, err)
		decoded, rest, err := DecodeOID(encoded)
		assert.NoError(t, err)
		assert.Equal(t, c, decoded)
		assert.Empty(t, rest)
	}
}

func TestOIDRejectsShortSequence(t *testing.T) {
	_, err := EncodeOID([]int{1})
	assert.ErrorIs(t, err, ErrInvalidOID)
}

func TestOIDRejectsInvalidSecondComponent(t *testing.T) {
	_, err := EncodeOID([]int{1, 40})
	assert.ErrorIs(t, err, ErrInvalidOID)
}

func TestOIDDecodeRejectsTruncatedSubidentifier(t *testing.T) {
	// Tag + length=1 + a single continuation-bit-set octet with nothing following.
	data := []byte{byte(TagOID), 0x01, 0x81}
	_, _, err := DecodeOID(data)
	assert.ErrorIs(t, err, ErrTruncatedSubidentifier)
}

func TestSequenceRoundTrip(t *testing.T) {
	inner := append(EncodeInteger(1), EncodeOctetString([]byte("public"))...)
	encoded := EncodeSequence(inner)
	content, rest, err := DecodeSequence(encoded)
	assert.NoError(t, err)
	assert.Equal(t, inner, content)
	assert.Empty(t, rest)
}

func TestDecodeTLVInsufficientContent(t *testing.T) {
	_, _, err := DecodeTLV([]byte{byte(TagInteger), 0x05, 0x01})
	assert.ErrorIs(t, err, ErrInsufficientContent)
}
