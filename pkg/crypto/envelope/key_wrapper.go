/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rsa"
	"crypto/sha256"
	"io"

	aeadsubtle "github.com/google/tink/go/aead/subtle"

	"github.com/coincord/ezrah-credential-go/pkg/crypto/cryptoutil"
)

// keyWrapper holds the primitives behind both envelopes so tests can swap them.
type keyWrapper interface {
	wrapRSA(r io.Reader, pub *rsa.PublicKey, cek []byte) ([]byte, error)
	unwrapRSA(priv *rsa.PrivateKey, encryptedKey []byte) ([]byte, error)
	deriveX25519(priv, pub []byte) ([]byte, error)
	seal(key, iv, plaintext []byte) ([]byte, error)
	open(key, iv, ciphertext []byte) ([]byte, error)
}

type keyWrapperSupport struct{}

// wrapRSA is RSA-OAEP with SHA-256 for both the label hash and MGF1, and an empty label.
func (w *keyWrapperSupport) wrapRSA(r io.Reader, pub *rsa.PublicKey, cek []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), r, pub, cek, nil)
}

func (w *keyWrapperSupport) unwrapRSA(priv *rsa.PrivateKey, encryptedKey []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha256.New(), nil, priv, encryptedKey, nil)
}

func (w *keyWrapperSupport) deriveX25519(priv, pub []byte) ([]byte, error) {
	return cryptoutil.DeriveECDHX25519(priv, pub)
}

// seal returns the AES-GCM ciphertext with the 16 byte tag appended. The IV is supplied by the caller
// and not included in the output.
func (w *keyWrapperSupport) seal(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nil, iv, plaintext, nil), nil
}

// open verifies and decrypts ciphertext||tag with Tink's AES-GCM, which expects the IV as prefix.
func (w *keyWrapperSupport) open(key, iv, ciphertext []byte) ([]byte, error) {
	a, err := aeadsubtle.NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	ct := make([]byte, 0, len(iv)+len(ciphertext))
	ct = append(ct, iv...)
	ct = append(ct, ciphertext...)

	return a.Decrypt(ct, nil)
}
