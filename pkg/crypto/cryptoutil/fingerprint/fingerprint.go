/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fingerprint parses Ed25519 public keys from the text forms recipients publish them in
// and builds did:key fingerprints for them.
package fingerprint

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	"github.com/coincord/ezrah-credential-go/pkg/doc/util/codec"
)

const (
	// X25519PubKeyMultiCodec for Curve25519 public key in multicodec table.
	// source: https://github.com/multiformats/multicodec/blob/master/table.csv.
	X25519PubKeyMultiCodec = 0xec
	// ED25519PubKeyMultiCodec for Ed25519 public key in multicodec table.
	ED25519PubKeyMultiCodec = 0xed

	didKeyPrefix = "did:key:"
)

// CreateDIDKey calls CreateDIDKeyByCode with Ed25519 key code.
func CreateDIDKey(pubKey []byte) (string, string) {
	return CreateDIDKeyByCode(ED25519PubKeyMultiCodec, pubKey)
}

// CreateDIDKeyByCode creates a did:key ID using the multicodec key fingerprint as per the did:key format spec found at:
// https://w3c-ccg.github.io/did-method-key/#format.
func CreateDIDKeyByCode(code uint64, pubKey []byte) (string, string) {
	methodID := KeyFingerprint(code, pubKey)
	didKey := didKeyPrefix + methodID
	keyID := fmt.Sprintf("%s#%s", didKey, methodID)

	return didKey, keyID
}

// KeyFingerprint generates a multicode fingerprint for pubKeyValue (raw key []byte).
func KeyFingerprint(code uint64, pubKeyValue []byte) string {
	multicodecValue := multicodec(code)
	mcLength := len(multicodecValue)
	buf := make([]uint8, mcLength+len(pubKeyValue))
	copy(buf, multicodecValue)
	copy(buf[mcLength:], pubKeyValue)

	return fmt.Sprintf("z%s", base58.Encode(buf))
}

func multicodec(code uint64) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	bw := binary.PutUvarint(buf, code)

	return buf[:bw]
}

// ParseEd25519PublicKey returns the raw 32 byte Ed25519 public key held in s. Accepted forms:
//
//	hex (either case), did:key:z... (with or without a #fragment), any multibase encoding of the
//	raw or multicodec prefixed key, and bare base58.
func ParseEd25519PublicKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, didKeyPrefix) {
		s = strings.TrimPrefix(s, didKeyPrefix)
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
	}

	if s == "" {
		return nil, fmt.Errorf("%w: empty key", api.ErrInvalidKey)
	}

	if len(s) == 2*ed25519.PublicKeySize {
		if b, err := codec.DecodeHex(s); err == nil {
			return b, nil
		}
	}

	if _, b, err := multibase.Decode(s); err == nil {
		if key, e := stripMulticodec(b); e == nil {
			return key, nil
		}
	}

	b := base58.Decode(s)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: unrecognised key encoding", api.ErrInvalidKey)
	}

	return stripMulticodec(b)
}

func stripMulticodec(b []byte) ([]byte, error) {
	if len(b) == ed25519.PublicKeySize {
		return b, nil
	}

	code, n := binary.Uvarint(b)
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d-byte key", api.ErrInvalidKeyLength, len(b))
	}

	if code != ED25519PubKeyMultiCodec {
		return nil, fmt.Errorf("%w: multicodec 0x%x is not ed25519-pub", api.ErrInvalidKey, code)
	}

	if len(b[n:]) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: %d-byte key", api.ErrInvalidKeyLength, len(b[n:]))
	}

	return b[n:], nil
}
