package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewerURL(t *testing.T) {
	tests := []struct {
		listen string
		host   string
		want   string
	}{
		{":80", "192.168.1.20", "http://192.168.1.20/"},
		{":8080", "192.168.1.20", "http://192.168.1.20:8080/"},
		{"0.0.0.0:8080", "10.0.0.2", "http://10.0.0.2:8080/"},
		{"127.0.0.1:9000", "10.0.0.2", "http://127.0.0.1:9000/"},
		{":8080", "", "http://127.0.0.1:8080/"},
		{"[::]:8080", "fe80::1", "http://[fe80::1]:8080/"},
		{"keyviz.local", "", "http://keyviz.local/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ViewerURL(tt.listen, tt.host), tt.listen)
	}
}

func TestLocalIPv4(t *testing.T) {
	ip, err := LocalIPv4()
	assert.NoError(t, err)
	if ip != "" {
		assert.NotEqual(t, "127.0.0.1", ip)
	}
}
