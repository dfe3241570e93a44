package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type code string

func (c code) String() string { return "code:" + string(c) }

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"bytes", []byte("xyz"), "xyz"},
		{"stringer", code("7"), "code:7"},
		{"int", 42, "42"},
		{"int64", int64(-9), "-9"},
		{"uint64", uint64(18), "18"},
		{"float", 12.5, "12.5"},
		{"whole float", float64(3), "3"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}
