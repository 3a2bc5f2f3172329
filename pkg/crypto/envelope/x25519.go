/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package envelope

import (
	"bytes"
	"fmt"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	cryptoapi "github.com/coincord/ezrah-credential-go/pkg/crypto"
	"github.com/coincord/ezrah-credential-go/pkg/crypto/cryptoutil"
	"github.com/coincord/ezrah-credential-go/pkg/doc/util/codec"
)

// EncryptX25519 derives an AES-256 key from X25519(ephemeral private, recipientPub) and encrypts plaintext
// with it. A nil ephemeral pair means a fresh one is generated from the random source.
func (c *Crypto) EncryptX25519(plaintext, recipientPub []byte,
	ephemeral *cryptoapi.KeyPair) (*cryptoapi.WrappedDek, error) {
	if len(recipientPub) != cryptoutil.Curve25519KeySize {
		return nil, fmt.Errorf("encryptX25519: %w: %d-byte recipient key", api.ErrInvalidKeyLength, len(recipientPub))
	}

	epk, err := c.ephemeralKey(ephemeral)
	if err != nil {
		return nil, fmt.Errorf("encryptX25519: %w", err)
	}

	z, err := c.kw.deriveX25519(epk.PrivateKey, recipientPub)
	if err != nil {
		return nil, fmt.Errorf("encryptX25519: %w", err)
	}

	iv, err := c.randomBytes(cryptoapi.IVSize)
	if err != nil {
		return nil, fmt.Errorf("encryptX25519: generate iv: %w", err)
	}

	ct, err := c.kw.seal(z[:cryptoapi.DefKeySize], iv, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encryptX25519: seal: %w", err)
	}

	return &cryptoapi.WrappedDek{
		Ciphertext:         codec.EncodeBase64Raw(ct),
		IV:                 codec.EncodeBase64Raw(iv),
		EphemeralPublicKey: codec.EncodeHex(epk.PublicKey),
		RecipientPubKey:    codec.EncodeHex(recipientPub),
		Alg:                cryptoapi.X25519AESGCMAlg,
		Enc:                cryptoapi.AESGCMEnc,
	}, nil
}

func (c *Crypto) ephemeralKey(kp *cryptoapi.KeyPair) (cryptoapi.KeyPair, error) {
	if kp == nil {
		return cryptoutil.GenerateCurve25519KeyPair(c.rand)
	}

	pub, err := cryptoutil.PublicCurve25519(kp.PrivateKey)
	if err != nil {
		return cryptoapi.KeyPair{}, fmt.Errorf("ephemeral key: %w", err)
	}

	if len(kp.PublicKey) != 0 && !bytes.Equal(kp.PublicKey, pub) {
		return cryptoapi.KeyPair{}, fmt.Errorf("ephemeral key: %w: public key does not match private key",
			api.ErrInvalidKey)
	}

	return cryptoapi.KeyPair{PublicKey: pub, PrivateKey: kp.PrivateKey}, nil
}

// DecryptX25519 re-derives the AES key from the recipient's X25519 private key and the envelope's ephemeral
// public key, then decrypts. Only the recipient key is reported as a key error; every failure caused by the
// envelope content, the ephemeral key included, is ErrDecryption.
func (c *Crypto) DecryptX25519(env *cryptoapi.WrappedDek, recipientPriv []byte) ([]byte, error) {
	if len(recipientPriv) != cryptoutil.Curve25519KeySize {
		return nil, fmt.Errorf("decryptX25519: %w: %d-byte recipient key", api.ErrInvalidKeyLength, len(recipientPriv))
	}

	if env == nil {
		return nil, fmt.Errorf("decryptX25519: %w: nil envelope", api.ErrMalformedPayload)
	}

	if env.Alg != "" && env.Alg != cryptoapi.X25519AESGCMAlg {
		return nil, fmt.Errorf("decryptX25519: %w: unexpected alg %q", api.ErrMalformedPayload, env.Alg)
	}

	epk, err := codec.DecodeHex(env.EphemeralPublicKey)
	if err != nil {
		logger.Debugf("decryptX25519: ephemeral key: %s", err)

		return nil, fmt.Errorf("decryptX25519: %w", api.ErrDecryption)
	}

	ct, err := codec.DecodeBase64(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decryptX25519: ciphertext: %w", err)
	}

	iv, err := codec.DecodeBase64(env.IV)
	if err != nil {
		return nil, fmt.Errorf("decryptX25519: iv: %w", err)
	}

	z, err := c.kw.deriveX25519(recipientPriv, epk)
	if err != nil {
		logger.Debugf("decryptX25519: derive: %s", err)

		return nil, fmt.Errorf("decryptX25519: %w", api.ErrDecryption)
	}

	return c.open(z[:cryptoapi.DefKeySize], iv, ct, "decryptX25519")
}
