package broadcast

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eulerlabs/euler/internal/composite"
)

func TestSenderDeliversDatagram(t *testing.T) {
	listener, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	defer listener.Close()
	port := listener.LocalAddr().(*net.UDPAddr).Port

	sender, err := NewSender("127.0.0.1", port)
	require.NoError(t, err)
	defer sender.Close()

	result := composite.NewAggregator().Aggregate(
		map[string]float64{"X": 63.75},
		map[string]float64{"X": 1.0},
		"equal_weight", time.Now(),
	)
	sender.Send(result)

	require.NoError(t, listener.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 256)
	n, _, err := listener.ReadFromUDP(buf)
	require.NoError(t, err)
	assert.Equal(t, "EULER|63.75|STRESS CONDITIONS", string(buf[:n]))
}

func TestNewSenderBadHost(t *testing.T) {
	_, err := NewSender("this host does not resolve", 5001)
	assert.Error(t, err)
}
