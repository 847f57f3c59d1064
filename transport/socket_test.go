package transport

import (
	"net"
	"testing"
	"time"

	assert "github.com/stretchr/testify/require"
)

func TestSendAndReceiveRoundTrip(t *testing.T) {
	server, err := Open()
	assert.NoError(t, err)
	defer server.Close()

	client, err := Open()
	assert.NoError(t, err)
	defer client.Close()

	serverAddr := server.LocalAddr().(*net.UDPAddr)
	assert.NoError(t, client.SendTo([]byte("hello"), serverAddr))

	buf := make([]byte, 1500)
	n, addr, err := server.ReceiveFrom(buf, time.Now().Add(2*time.Second))
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
	assert.NotNil(t, addr)
}

func TestReceiveFromTimesOut(t *testing.T) {
	s, err := Open()
	assert.NoError(t, err)
	defer s.Close()

	buf := make([]byte, 1500)
	_, _, err = s.ReceiveFrom(buf, time.Now().Add(10*time.Millisecond))
	assert.Error(t, err)
}

func TestSendToRejectsOversizedPayload(t *testing.T) {
	s, err := Open()
	assert.NoError(t, err)
	defer s.Close()

	big := make([]byte, MaxPayloadSize+1)
	err = s.SendTo(big, s.LocalAddr().(*net.UDPAddr))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}
