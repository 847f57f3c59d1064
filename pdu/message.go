package pdu

import (
	"github.com/pkg/errors"

	"github.com/damianoneill/snmpkit/ber"
)

// DefaultCommunity is the conventional SNMPv1/v2c read community used when
// a caller supplies none.
const DefaultCommunity = "public"

// Message is the outer SNMP envelope: version, community, and one PDU.
type Message struct {
	Version   Version
	Community []byte
	PDU       PDU
}

// Encode renders m as the full SEQUENCE { version, community, pdu }
// described in RFC-1157 §4 / RFC-1905 §3. The result is rejected if it
// would exceed the 65,507-byte UDP payload ceiling.
func (m Message) Encode() ([]byte, error) {
	pduBytes, err := m.PDU.Encode()
	if err != nil {
		return nil, errors.Wrap(err, "encode message pdu")
	}

	content := ber.EncodeInteger(int64(m.Version))
	content = append(content, ber.EncodeOctetString(m.Community)...)
	content = append(content, pduBytes...)

	encoded := ber.EncodeSequence(content)
	if len(encoded) > ber.MaxPayloadSize {
		return nil, ber.ErrPayloadTooLarge
	}
	return encoded, nil
}

// DecodeMessage parses a full SNMP message from data. Trailing bytes are an
// error: UDP delivers exactly one datagram per read, and a well-formed
// message consumes it entirely.
func DecodeMessage(data []byte) (Message, error) {
	seqContent, rest, err := ber.DecodeSequence(data)
	if err != nil {
		return Message{}, errors.Wrap(err, "decode message sequence")
	}
	if len(rest) != 0 {
		return Message{}, errors.New("pdu: trailing bytes after message")
	}

	version, after, err := ber.DecodeInteger(seqContent)
	if err != nil {
		return Message{}, errors.Wrap(err, "decode message version")
	}

	community, after, err := ber.DecodeOctetString(after)
	if err != nil {
		return Message{}, errors.Wrap(err, "decode message community")
	}

	p, after, err := DecodePDU(after)
	if err != nil {
		return Message{}, err
	}
	if len(after) != 0 {
		return Message{}, errors.New("pdu: trailing bytes after message pdu")
	}

	return Message{Version: Version(version), Community: community, PDU: p}, nil
}
