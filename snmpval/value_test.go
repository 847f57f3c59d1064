package snmpval

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	cases := []Value{
		Integer32(-42),
		OctetString("hello"),
		Null{},
		ObjectIdentifier{1, 3, 6, 1, 2, 1, 1, 1, 0},
		IPAddress{192, 0, 2, 1},
		Counter32(4294967295),
		Gauge32(100),
		TimeTicks(12345),
		Opaque{0xDE, 0xAD},
		Counter64(1 << 40),
		NoSuchObject{},
		NoSuchInstance{},
		EndOfMibView{},
	}
	for _, v := range cases {
		encoded := v.Encode()
		decoded, rest, err := Decode(encoded)
		assert.NoError(t, err)
		assert.Empty(t, rest)
		assert.Equal(t, v, decoded)
	}
}

func TestIsException(t *testing.T) {
	assert.True(t, IsException(NoSuchObject{}))
	assert.True(t, IsException(NoSuchInstance{}))
	assert.True(t, IsException(EndOfMibView{}))
	assert.False(t, IsException(Integer32(1)))
}

func TestDecodeUnknownTagRejected(t *testing.T) {
	_, _, err := Decode([]byte{0x99, 0x00})
	assert.Error(t, err)
}

func TestFormatTimeTicks(t *testing.T) {
	// 1 day, 2 hours, 3 minutes, 4.05 seconds.
	ticks := uint32((((24+2)*3600+3*60+4)*100 + 5))
	assert.Equal(t, "1 days 2 hours 3 minutes 4.05 seconds", FormatTimeTicks(ticks))
}

func TestNewCounter32RejectsOverflow(t *testing.T) {
	_, err := NewCounter32(1 << 33)
	assert.ErrorIs(t, err, ErrCounterRange)
}

func TestNewIPAddressRejectsWrongLength(t *testing.T) {
	_, err := NewIPAddress([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidIPAddress)
}

func TestFormatInterfaceSpeed(t *testing.T) {
	assert.Equal(t, "1.00 Gbps", FormatInterfaceSpeed(1_000_000_000))
	assert.Equal(t, "100.00 Mbps", FormatInterfaceSpeed(100_000_000))
}
