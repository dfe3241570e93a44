package server_test

import (
	"testing"
	"time"

	"product-images/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	c := server.Config{Port: "9090"}
	assert.Equal(t, ":9090", c.Address())
}

func TestConfig_Timeouts(t *testing.T) {
	tests := []struct {
		name  string
		read  int
		write int
		wantR time.Duration
		wantW time.Duration
	}{
		{"Set", 10, 120, 10 * time.Second, 2 * time.Minute},
		{"Zero", 0, 0, 0, 0},
		{"Negative", -1, -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ReadTimeoutSeconds: tt.read, WriteTimeoutSeconds: tt.write}
			assert.Equal(t, tt.wantR, c.ReadTimeout())
			assert.Equal(t, tt.wantW, c.WriteTimeout())
		})
	}
}
