package pdu

import (
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/damianoneill/snmpkit/oid"
	"github.com/damianoneill/snmpkit/snmpval"
)

func TestMessageEncodeRejectsOversizedPayload(t *testing.T) {
	big := make([]byte, 70000)
	vb := Varbind{OID: oid.MustParse("1.3.6.1.2.1.1.1.0"), Value: snmpval.OctetString(big)}
	p, err := NewSetRequest(1, vb)
	assert.NoError(t, err)

	msg := Message{Version: V2c, Community: []byte("public"), PDU: p}
	_, err = msg.Encode()
	assert.Error(t, err)
}

func TestDecodeMessageRejectsTrailingBytes(t *testing.T) {
	o := oid.MustParse("1.3.6.1.2.1.1.1.0")
	p, err := NewGetRequest(1, o)
	assert.NoError(t, err)
	msg := Message{Version: V2c, Community: []byte("public"), PDU: p}
	encoded, err := msg.Encode()
	assert.NoError(t, err)

	_, err = DecodeMessage(append(encoded, 0x00))
	assert.Error(t, err)
}
