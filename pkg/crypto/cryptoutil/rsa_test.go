/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cryptoutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
)

func TestParseRSAKeys(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	spki, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	pkcs8, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	armor := func(typ string, der []byte) string {
		return string(pem.EncodeToMemory(&pem.Block{Type: typ, Bytes: der}))
	}

	t.Run("success - public key forms", func(t *testing.T) {
		spkiPEM := armor("PUBLIC KEY", spki)

		for _, in := range []string{
			spkiPEM,
			armor("RSA PUBLIC KEY", x509.MarshalPKCS1PublicKey(&priv.PublicKey)),
			base64.StdEncoding.EncodeToString(spki),
			strings.ReplaceAll(strings.ReplaceAll(spkiPEM, "-----BEGIN PUBLIC KEY-----", ""),
				"-----END PUBLIC KEY-----", ""),
		} {
			pub, e := ParseRSAPublicKeyPEM(in)
			require.NoError(t, e)
			require.True(t, priv.PublicKey.Equal(pub))
		}
	})

	t.Run("success - private key forms", func(t *testing.T) {
		for _, in := range []string{
			armor("PRIVATE KEY", pkcs8),
			armor("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(priv)),
			base64.StdEncoding.EncodeToString(pkcs8),
		} {
			k, e := ParseRSAPrivateKeyPEM(in)
			require.NoError(t, e)
			require.True(t, priv.Equal(k))
		}
	})

	t.Run("error - invalid input", func(t *testing.T) {
		for _, in := range []string{"", "   ", "not a key", armor("PUBLIC KEY", []byte("garbage"))} {
			_, e := ParseRSAPublicKeyPEM(in)
			require.True(t, errors.Is(e, api.ErrInvalidKey), in)

			_, e = ParseRSAPrivateKeyPEM(in)
			require.True(t, errors.Is(e, api.ErrInvalidKey), in)
		}
	})

	t.Run("error - not an RSA key", func(t *testing.T) {
		ec, e := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, e)

		ecPub, e := x509.MarshalPKIXPublicKey(&ec.PublicKey)
		require.NoError(t, e)

		_, e = ParseRSAPublicKeyPEM(armor("PUBLIC KEY", ecPub))
		require.True(t, errors.Is(e, api.ErrInvalidKey))

		ecPriv, e := x509.MarshalPKCS8PrivateKey(ec)
		require.NoError(t, e)

		_, e = ParseRSAPrivateKeyPEM(armor("PRIVATE KEY", ecPriv))
		require.True(t, errors.Is(e, api.ErrInvalidKey))
	})
}
