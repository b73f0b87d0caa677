package utils

import (
	"bufio"
	"bytes"
	"strings"
	"unicode"
)

// GeneratedHeader marks files written by dtogen
const GeneratedHeader = "// Code generated by dtogen. DO NOT EDIT."

// GeneratedFileSuffix ends the name of every generated file
const GeneratedFileSuffix = "_gen.go"

// IsGeneratedSource reports whether the source carries the dtogen header before
// its package clause
func IsGeneratedSource(source []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(source))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == GeneratedHeader {
			return true
		}
		if strings.HasPrefix(line, "package ") {
			return false
		}
	}
	return false
}

// GeneratedFileName returns the file name for a generated type:
// OrderDto -> order_dto_gen.go
func GeneratedFileName(typeName string) string {
	return ToSnakeCase(typeName) + GeneratedFileSuffix
}

// ToSnakeCase converts a Go identifier to snake_case, keeping initialisms
// together (HTTPServerDto -> http_server_dto)
func ToSnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
