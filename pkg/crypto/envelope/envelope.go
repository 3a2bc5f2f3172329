/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package envelope implements the hybrid public-key envelopes that protect credential disclosures:
// RSA-OAEP or X25519 ECDH key encapsulation with AES-256-GCM bulk encryption.
//
// Every call draws a fresh 12 byte IV from the configured random source. Any unwrap or authentication
// failure is reported as api.ErrDecryption without further detail.
package envelope

import (
	"io"

	"github.com/google/tink/go/subtle/random"

	"github.com/coincord/ezrah-credential-go/component/log"
	cryptoapi "github.com/coincord/ezrah-credential-go/pkg/crypto"
)

var logger = log.New("ezrah/envelope")

// Crypto encrypts and decrypts RSA and X25519 envelopes.
type Crypto struct {
	rand io.Reader
	kw   keyWrapper
}

var (
	_ cryptoapi.RSAEnvelope    = (*Crypto)(nil)
	_ cryptoapi.X25519Envelope = (*Crypto)(nil)
)

type opts struct {
	rand io.Reader
}

// Opt configures a Crypto instance.
type Opt func(*opts)

// WithRandomSource replaces the CSPRNG used for content keys, IVs, ephemeral keys and OAEP padding.
// Meant for tests that need deterministic output.
func WithRandomSource(r io.Reader) Opt {
	return func(o *opts) {
		o.rand = r
	}
}

// New creates a new Crypto instance.
func New(options ...Opt) *Crypto {
	o := &opts{rand: tinkRandom{}}

	for _, opt := range options {
		opt(o)
	}

	return &Crypto{rand: o.rand, kw: &keyWrapperSupport{}}
}

// tinkRandom adapts Tink's CSPRNG to io.Reader.
type tinkRandom struct{}

func (tinkRandom) Read(p []byte) (int, error) {
	return copy(p, random.GetRandomBytes(uint32(len(p)))), nil
}

func (c *Crypto) randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)

	if _, err := io.ReadFull(c.rand, b); err != nil {
		return nil, err
	}

	return b, nil
}
