/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package codec converts between bytes and the text encodings used on the wire:
// base64 (standard and URL-safe), lowercase hex and UTF-8.
//
// Decoders are tolerant. Padding may be present or absent and either base64 alphabet is accepted,
// because payloads reach this package from several producers.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
)

// EncodeBase64URL encodes b with the URL-safe alphabet and no padding.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64URL decodes s. '+' and '/' are mapped to '-' and '_', and '=' padding is ignored.
func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(normalizeURL(s))
	if err != nil {
		return nil, fmt.Errorf("%w: base64url: %s", api.ErrDecode, err.Error())
	}

	return b, nil
}

// EncodeBase64 encodes b with the standard alphabet and padding.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// EncodeBase64Raw encodes b with the standard alphabet and no padding.
func EncodeBase64Raw(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes standard base64 with or without padding. URL alphabet input is accepted too.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(normalizeURL(s))
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %s", api.ErrDecode, err.Error())
	}

	return b, nil
}

// EncodeHex returns lowercase hex without separators.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex decodes hex of either case.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: hex: %s", api.ErrDecode, err.Error())
	}

	return b, nil
}

// BytesToUTF8 returns b as a string. Invalid UTF-8 is rejected.
func BytesToUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid utf-8", api.ErrDecode)
	}

	return string(b), nil
}

// UTF8ToBytes returns the UTF-8 bytes of s.
func UTF8ToBytes(s string) []byte {
	return []byte(s)
}

// EncodeBase64URLString base64url-encodes the UTF-8 bytes of s.
func EncodeBase64URLString(s string) string {
	return EncodeBase64URL(UTF8ToBytes(s))
}

// DecodeBase64URLString decodes s and returns the result as UTF-8 text.
func DecodeBase64URLString(s string) (string, error) {
	b, err := DecodeBase64URL(s)
	if err != nil {
		return "", err
	}

	return BytesToUTF8(b)
}

var urlReplacer = strings.NewReplacer("+", "-", "/", "_", "=", "") //nolint:gochecknoglobals

func normalizeURL(s string) string {
	return urlReplacer.Replace(strings.TrimSpace(s))
}
