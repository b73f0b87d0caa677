package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGeneratedSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"header first", GeneratedHeader + "\n\npackage model\n", true},
		{"header after build tag", "//go:build tools\n\n" + GeneratedHeader + "\npackage model\n", true},
		{"handwritten", "package model\n\ntype Order interface{}\n", false},
		{"header after package clause", "package model\n\n" + GeneratedHeader + "\n", false},
		{"other generator", "// Code generated by mockgen. DO NOT EDIT.\npackage model\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGeneratedSource([]byte(tt.source)))
		})
	}
}

func TestGeneratedFileName(t *testing.T) {
	tests := map[string]string{
		"OrderDto":      "order_dto_gen.go",
		"IDto":          "i_dto_gen.go",
		"HTTPServerDto": "http_server_dto_gen.go",
		"V2OrderImpl":   "v2_order_impl_gen.go",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, GeneratedFileName(in))
		})
	}
}
