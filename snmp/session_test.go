package snmp

import (
	"context"
	"net"
	"testing"
	"time"

	assert "github.com/stretchr/testify/require"

	"github.com/damianoneill/snmpkit/oid"
	"github.com/damianoneill/snmpkit/pdu"
	"github.com/damianoneill/snmpkit/snmpval"
)

// startTestAgent is a minimal UDP responder used only by this package's
// tests; the full agent simulator lives in internal/testagent, whose own
// tests drive sessions and walks against it.
func startTestAgent(t *testing.T, handle func(pdu.Message) (pdu.PDU, bool)) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{})
	assert.NoError(t, err)

	go func() {
		buf := make([]byte, 4096)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			msg, err := pdu.DecodeMessage(buf[:n])
			if err != nil {
				continue
			}
			respPDU, ok := handle(msg)
			if !ok {
				continue
			}
			resp := pdu.Message{Version: msg.Version, Community: msg.Community, PDU: respPDU}
			encoded, err := resp.Encode()
			if err != nil {
				continue
			}
			_, _ = conn.WriteToUDP(encoded, addr)
		}
	}()

	return conn
}

func sysDescrOID() oid.OID { return oid.MustParse("1.3.6.1.2.1.1.1.0") }

func TestSessionGetReturnsVarbind(t *testing.T) {
	agent := startTestAgent(t, func(msg pdu.Message) (pdu.PDU, bool) {
		vb := pdu.Varbind{OID: sysDescrOID(), Value: snmpval.OctetString("widget")}
		p, err := pdu.NewResponse(msg.PDU.RequestID, pdu.NoError, 0, []pdu.Varbind{vb})
		return p, err == nil
	})
	defer agent.Close()

	session, err := NewFactory().NewSession(context.Background(), agent.LocalAddr().String())
	assert.NoError(t, err)
	defer session.Close()

	vb, err := session.Get(context.Background(), sysDescrOID())
	assert.NoError(t, err)
	assert.Equal(t, snmpval.OctetString("widget"), vb.Value)
}

func TestSessionGetSurfacesNoSuchObject(t *testing.T) {
	agent := startTestAgent(t, func(msg pdu.Message) (pdu.PDU, bool) {
		vb := pdu.Varbind{OID: sysDescrOID(), Value: snmpval.NoSuchObject{}}
		p, err := pdu.NewResponse(msg.PDU.RequestID, pdu.NoError, 0, []pdu.Varbind{vb})
		return p, err == nil
	})
	defer agent.Close()

	session, err := NewFactory().NewSession(context.Background(), agent.LocalAddr().String())
	assert.NoError(t, err)
	defer session.Close()

	_, err = session.Get(context.Background(), sysDescrOID())
	assert.ErrorIs(t, err, ErrNoSuchObject)
}

func TestSessionGetNormalizesGenErrToNoSuchObjectOnV2c(t *testing.T) {
	agent := startTestAgent(t, func(msg pdu.Message) (pdu.PDU, bool) {
		vb := pdu.NullVarbind(sysDescrOID())
		p, err := pdu.NewResponse(msg.PDU.RequestID, pdu.GenErr, 1, []pdu.Varbind{vb})
		return p, err == nil
	})
	defer agent.Close()

	session, err := NewFactory().NewSession(context.Background(), agent.LocalAddr().String(), WithVersion(pdu.V2c))
	assert.NoError(t, err)
	defer session.Close()

	_, err = session.Get(context.Background(), sysDescrOID())
	assert.ErrorIs(t, err, ErrNoSuchObject)
}

func TestSessionSetSucceeds(t *testing.T) {
	agent := startTestAgent(t, func(msg pdu.Message) (pdu.PDU, bool) {
		p, err := pdu.NewResponse(msg.PDU.RequestID, pdu.NoError, 0, msg.PDU.Varbinds)
		return p, err == nil
	})
	defer agent.Close()

	session, err := NewFactory().NewSession(context.Background(), agent.LocalAddr().String())
	assert.NoError(t, err)
	defer session.Close()

	err = session.Set(context.Background(), pdu.Varbind{OID: sysDescrOID(), Value: snmpval.OctetString("new")})
	assert.NoError(t, err)
}

func TestSessionGetBulkReturnsVarbinds(t *testing.T) {
	agent := startTestAgent(t, func(msg pdu.Message) (pdu.PDU, bool) {
		vbs := []pdu.Varbind{
			{OID: oid.MustParse("1.3.6.1.2.1.2.2.1.1.1"), Value: snmpval.Integer32(1)},
			{OID: oid.MustParse("1.3.6.1.2.1.2.2.1.1.2"), Value: snmpval.Integer32(2)},
		}
		p, err := pdu.NewResponse(msg.PDU.RequestID, pdu.NoError, 0, vbs)
		return p, err == nil
	})
	defer agent.Close()

	session, err := NewFactory().NewSession(context.Background(), agent.LocalAddr().String())
	assert.NoError(t, err)
	defer session.Close()

	vbs, err := session.GetBulk(context.Background(), 0, 10, oid.MustParse("1.3.6.1.2.1.2.2.1.1"))
	assert.NoError(t, err)
	assert.Len(t, vbs, 2)
}

func TestSessionGetBulkRejectedOnV1(t *testing.T) {
	session, err := NewFactory().NewSession(context.Background(), "127.0.0.1:161", WithVersion(pdu.V1))
	assert.NoError(t, err)
	defer session.Close()

	_, err = session.GetBulk(context.Background(), 0, 10, sysDescrOID())
	assert.ErrorIs(t, err, ErrGetBulkRequiresV2c)
}

func TestSessionGetTimesOutAndReturnsAfterRetries(t *testing.T) {
	session, err := NewFactory().NewSession(context.Background(), "127.0.0.1:1", Timeout(20*time.Millisecond), Retries(1))
	assert.NoError(t, err)
	defer session.Close()

	_, err = session.Get(context.Background(), sysDescrOID())
	assert.Error(t, err)
}

func TestSessionsCanShareOneEngine(t *testing.T) {
	agent := startTestAgent(t, func(msg pdu.Message) (pdu.PDU, bool) {
		vb := pdu.Varbind{OID: sysDescrOID(), Value: snmpval.OctetString("shared")}
		p, err := pdu.NewResponse(msg.PDU.RequestID, pdu.NoError, 0, []pdu.Varbind{vb})
		return p, err == nil
	})
	defer agent.Close()

	owner, err := NewFactory().NewSession(context.Background(), agent.LocalAddr().String())
	assert.NoError(t, err)
	defer owner.Close()

	guest, err := NewFactory().NewSession(context.Background(), agent.LocalAddr().String(), WithEngine(owner.(*sessionImpl).engine()))
	assert.NoError(t, err)
	// guest does not own the engine, so closing it must not affect owner.
	assert.NoError(t, guest.Close())

	vb, err := owner.Get(context.Background(), sysDescrOID())
	assert.NoError(t, err)
	assert.Equal(t, snmpval.OctetString("shared"), vb.Value)
}
