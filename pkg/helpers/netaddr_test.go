package helpers

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInternalIP(t *testing.T) {
	cases := map[string]bool{
		"127.0.0.1":       true,
		"::1":             true,
		"10.0.0.8":        true,
		"192.168.1.1":     true,
		"172.16.4.4":      true,
		"fd00::1":         true,
		"169.254.169.254": true,
		"fe80::1":         true,
		"0.0.0.0":         true,
		"224.0.0.1":       true,
		"203.0.113.7":     false,
		"8.8.8.8":         false,
		"2001:4860::8888": false,
	}
	for ip, want := range cases {
		assert.Equal(t, want, IsInternalIP(net.ParseIP(ip)), ip)
	}
}
