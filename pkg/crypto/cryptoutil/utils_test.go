/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cryptoutil

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/curve25519"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	"github.com/coincord/ezrah-credential-go/pkg/crypto"
)

func TestEd25519toCurve25519(t *testing.T) {
	t.Run("success - converted halves form an x25519 pair", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
			require.NoError(t, err)

			kp, err := Ed25519KeyPairToCurve25519(crypto.KeyPair{PublicKey: edPub, PrivateKey: edPriv})
			require.NoError(t, err)
			require.Len(t, kp.PublicKey, Curve25519KeySize)
			require.Len(t, kp.PrivateKey, Curve25519KeySize)

			derived, err := curve25519.X25519(kp.PrivateKey, curve25519.Basepoint)
			require.NoError(t, err)
			require.Equal(t, kp.PublicKey, derived)
		}
	})

	t.Run("success - seed and full private key agree", func(t *testing.T) {
		_, edPriv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		fromFull, err := SecretEd25519toCurve25519(edPriv)
		require.NoError(t, err)

		fromSeed, err := SecretEd25519toCurve25519(edPriv.Seed())
		require.NoError(t, err)

		require.Equal(t, fromFull, fromSeed)
		require.Zero(t, fromSeed[0]&7)
		require.Equal(t, byte(64), fromSeed[31]&192)
	})

	t.Run("error - wrong lengths", func(t *testing.T) {
		for _, n := range []int{0, 31, 33, 64} {
			_, err := PublicEd25519toCurve25519(make([]byte, n))
			require.True(t, errors.Is(err, api.ErrInvalidKeyLength), "public %d", n)
			require.True(t, errors.Is(err, api.ErrInvalidKey))
		}

		for _, n := range []int{0, 31, 33, 63, 65} {
			_, err := SecretEd25519toCurve25519(make([]byte, n))
			require.True(t, errors.Is(err, api.ErrInvalidKeyLength), "private %d", n)
		}

		_, err := Ed25519KeyPairToCurve25519(crypto.KeyPair{PublicKey: make([]byte, 32), PrivateKey: []byte{1}})
		require.True(t, errors.Is(err, api.ErrInvalidKeyLength))
	})

	t.Run("error - not a curve point", func(t *testing.T) {
		rejected := 0

		// roughly half of all y coordinates have no matching x on the curve.
		for y := 2; y < 64; y++ {
			pub := make([]byte, 32)
			pub[0] = byte(y)

			_, err := PublicEd25519toCurve25519(pub)
			if err == nil {
				continue
			}

			require.True(t, errors.Is(err, api.ErrInvalidKey))
			require.False(t, errors.Is(err, api.ErrInvalidKeyLength))

			rejected++
		}

		require.NotZero(t, rejected)
	})
}

func TestGenerateCurve25519KeyPair(t *testing.T) {
	kp, err := GenerateCurve25519KeyPair(rand.Reader)
	require.NoError(t, err)

	pub, err := PublicCurve25519(kp.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey, pub)

	fixed, err := GenerateCurve25519KeyPair(bytes.NewReader(bytes.Repeat([]byte{7}, 32)))
	require.NoError(t, err)

	again, err := GenerateCurve25519KeyPair(bytes.NewReader(bytes.Repeat([]byte{7}, 32)))
	require.NoError(t, err)
	require.Equal(t, fixed, again)

	_, err = GenerateCurve25519KeyPair(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)

	_, err = PublicCurve25519([]byte{1})
	require.True(t, errors.Is(err, api.ErrInvalidKeyLength))
}

func TestDeriveECDHX25519(t *testing.T) {
	alice, err := GenerateCurve25519KeyPair(rand.Reader)
	require.NoError(t, err)

	bob, err := GenerateCurve25519KeyPair(rand.Reader)
	require.NoError(t, err)

	z1, err := DeriveECDHX25519(alice.PrivateKey, bob.PublicKey)
	require.NoError(t, err)

	z2, err := DeriveECDHX25519(bob.PrivateKey, alice.PublicKey)
	require.NoError(t, err)
	require.Equal(t, z1, z2)

	_, err = DeriveECDHX25519(alice.PrivateKey, make([]byte, 32))
	require.True(t, errors.Is(err, api.ErrInvalidKey))

	_, err = DeriveECDHX25519(alice.PrivateKey, []byte{1})
	require.True(t, errors.Is(err, api.ErrInvalidKeyLength))
}
