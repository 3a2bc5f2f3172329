/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package envelope

import (
	"fmt"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	cryptoapi "github.com/coincord/ezrah-credential-go/pkg/crypto"
	"github.com/coincord/ezrah-credential-go/pkg/crypto/cryptoutil"
	"github.com/coincord/ezrah-credential-go/pkg/doc/util/codec"
)

// EncryptRSA encrypts plaintext under a fresh AES-256 content key and wraps that key for the recipient's
// RSA public key with RSA-OAEP (SHA-256).
func (c *Crypto) EncryptRSA(plaintext []byte, recipientPublicKeyPEM string) (*cryptoapi.EncPayload, error) {
	pub, err := cryptoutil.ParseRSAPublicKeyPEM(recipientPublicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("encryptRSA: %w", err)
	}

	cek, err := c.randomBytes(cryptoapi.DefKeySize)
	if err != nil {
		return nil, fmt.Errorf("encryptRSA: generate content key: %w", err)
	}

	iv, err := c.randomBytes(cryptoapi.IVSize)
	if err != nil {
		return nil, fmt.Errorf("encryptRSA: generate iv: %w", err)
	}

	ct, err := c.kw.seal(cek, iv, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encryptRSA: seal: %w", err)
	}

	ek, err := c.kw.wrapRSA(c.rand, pub, cek)
	if err != nil {
		return nil, fmt.Errorf("encryptRSA: wrap content key: %w", err)
	}

	return &cryptoapi.EncPayload{
		Ciphertext:            codec.EncodeBase64(ct),
		IV:                    codec.EncodeBase64(iv),
		EncryptedSymmetricKey: codec.EncodeBase64(ek),
		Alg:                   cryptoapi.RSAOAEPAESGCMAlg,
		Enc:                   cryptoapi.AESGCMEnc,
	}, nil
}

// DecryptRSA unwraps the content key with the recipient's RSA private key and decrypts the payload.
func (c *Crypto) DecryptRSA(payload *cryptoapi.EncPayload, recipientPrivateKeyPEM string) ([]byte, error) {
	if payload == nil {
		return nil, fmt.Errorf("decryptRSA: %w: nil payload", api.ErrMalformedPayload)
	}

	if payload.Alg != "" && payload.Alg != cryptoapi.RSAOAEPAESGCMAlg {
		return nil, fmt.Errorf("decryptRSA: %w: unexpected alg %q", api.ErrMalformedPayload, payload.Alg)
	}

	priv, err := cryptoutil.ParseRSAPrivateKeyPEM(recipientPrivateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("decryptRSA: %w", err)
	}

	ct, err := codec.DecodeBase64(payload.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decryptRSA: ciphertext: %w", err)
	}

	iv, err := codec.DecodeBase64(payload.IV)
	if err != nil {
		return nil, fmt.Errorf("decryptRSA: iv: %w", err)
	}

	ek, err := codec.DecodeBase64(payload.EncryptedSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("decryptRSA: encrypted key: %w", err)
	}

	cek, err := c.kw.unwrapRSA(priv, ek)
	if err != nil || len(cek) != cryptoapi.DefKeySize {
		logger.Debugf("decryptRSA: content key unwrap failed")

		return nil, fmt.Errorf("decryptRSA: %w", api.ErrDecryption)
	}

	return c.open(cek, iv, ct, "decryptRSA")
}

func (c *Crypto) open(key, iv, ct []byte, op string) ([]byte, error) {
	if len(iv) != cryptoapi.IVSize {
		return nil, fmt.Errorf("%s: %w: %d-byte iv", op, api.ErrDecryption, len(iv))
	}

	pt, err := c.kw.open(key, iv, ct)
	if err != nil {
		logger.Debugf("%s: authentication failed", op)

		return nil, fmt.Errorf("%s: %w", op, api.ErrDecryption)
	}

	return pt, nil
}
