/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cryptoutil converts keys between the Ed25519 signing domain and the X25519 key agreement domain,
// performs X25519 ECDH and parses RSA keys from PEM.
package cryptoutil

import (
	"crypto/ed25519"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	"github.com/coincord/ezrah-credential-go/pkg/crypto"
)

// Curve25519KeySize number of bytes in a Curve25519 public or private key.
const Curve25519KeySize = 32

// PublicEd25519toCurve25519 takes an Ed25519 public key and provides the corresponding Curve25519 public key
// using the birational map from the Edwards curve to its Montgomery form.
func PublicEd25519toCurve25519(pub []byte) ([]byte, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: %d-byte public key", api.ErrInvalidKeyLength, len(pub))
	}

	p, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: not an edwards25519 point", api.ErrInvalidKey)
	}

	return p.BytesMontgomery(), nil
}

// SecretEd25519toCurve25519 converts a secret key from Ed25519 to curve25519 format.
// priv is either the 32 byte seed or the 64 byte seed||public form used by crypto/ed25519.
// The result is the clamped low half of SHA-512(seed), the scalar Ed25519 signs with.
func SecretEd25519toCurve25519(priv []byte) ([]byte, error) {
	var seed []byte

	switch len(priv) {
	case ed25519.SeedSize:
		seed = priv
	case ed25519.PrivateKeySize:
		seed = priv[:ed25519.SeedSize]
	default:
		return nil, fmt.Errorf("%w: %d-byte private key", api.ErrInvalidKeyLength, len(priv))
	}

	h := sha512.Sum512(seed)

	out := make([]byte, Curve25519KeySize)
	copy(out, h[:Curve25519KeySize])
	clamp(out)

	return out, nil
}

// Ed25519KeyPairToCurve25519 converts both halves of an Ed25519 key pair.
func Ed25519KeyPairToCurve25519(kp crypto.KeyPair) (crypto.KeyPair, error) {
	pub, err := PublicEd25519toCurve25519(kp.PublicKey)
	if err != nil {
		return crypto.KeyPair{}, fmt.Errorf("convert public key: %w", err)
	}

	priv, err := SecretEd25519toCurve25519(kp.PrivateKey)
	if err != nil {
		return crypto.KeyPair{}, fmt.Errorf("convert private key: %w", err)
	}

	return crypto.KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// GenerateCurve25519KeyPair creates an X25519 key pair from 32 bytes read from r.
func GenerateCurve25519KeyPair(r io.Reader) (crypto.KeyPair, error) {
	priv := make([]byte, Curve25519KeySize)

	if _, err := io.ReadFull(r, priv); err != nil {
		return crypto.KeyPair{}, fmt.Errorf("generate curve25519 key: %w", err)
	}

	clamp(priv)

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return crypto.KeyPair{}, fmt.Errorf("generate curve25519 key: %w", err)
	}

	return crypto.KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// PublicCurve25519 returns the X25519 public key of priv.
func PublicCurve25519(priv []byte) ([]byte, error) {
	if len(priv) != Curve25519KeySize {
		return nil, fmt.Errorf("%w: %d-byte private key", api.ErrInvalidKeyLength, len(priv))
	}

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", api.ErrInvalidKey, err.Error())
	}

	return pub, nil
}

// DeriveECDHX25519 returns the X25519 shared secret of priv and pub.
// Low order public keys, which yield the all-zero secret, are rejected.
func DeriveECDHX25519(priv, pub []byte) ([]byte, error) {
	if len(priv) != Curve25519KeySize || len(pub) != Curve25519KeySize {
		return nil, fmt.Errorf("%w: x25519 keys are %d bytes", api.ErrInvalidKeyLength, Curve25519KeySize)
	}

	z, err := curve25519.X25519(priv, pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", api.ErrInvalidKey, err.Error())
	}

	return z, nil
}

func clamp(k []byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
