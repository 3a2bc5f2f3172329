/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package api holds the error taxonomy shared by the confidentiality packages.
//
// Every error returned by codec, cryptoutil, envelope, dek, the sd-jwt verifier and presentation wraps
// exactly one of the sentinels below, so callers branch with errors.Is instead of matching messages.
// Package level errors such as dek.ErrSlotNotFound wrap one of them too.
package api

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned for malformed base64, hex or UTF-8 input.
	ErrDecode = errors.New("decode error")

	// ErrInvalidKey is returned for key material that cannot be used: not a curve point,
	// not a parseable PEM block, wrong key type.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidKeyLength is returned for key material of the wrong size. It wraps ErrInvalidKey.
	ErrInvalidKeyLength = fmt.Errorf("%w: invalid key length", ErrInvalidKey)

	// ErrDecryption is returned when an envelope cannot be opened. The cause (RSA-OAEP unwrap,
	// ECDH, AES-GCM tag) is deliberately not reported.
	ErrDecryption = errors.New("decryption failed")

	// ErrMalformedToken is returned for compact presentation tokens that violate the
	// header.payload.signature~disclosures shape.
	ErrMalformedToken = errors.New("malformed token")

	// ErrMalformedPayload is returned for webhook envelopes or envelope payloads with an
	// unexpected JSON shape.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrVerification is returned when a well formed token fails a signature or disclosure digest check.
	ErrVerification = errors.New("verification failed")
)
