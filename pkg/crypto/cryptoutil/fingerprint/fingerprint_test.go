/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fingerprint

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"
	"github.com/stretchr/testify/require"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
)

const (
	// did:key test vector from https://w3c-ccg.github.io/did-method-key/#ed25519-x25519.
	edPubKeyBase58 = "B12NYF8RrR3h41TDCTJojY59usg3mbtbjnFs7Eud1Y6u"
	edDIDKey       = "did:key:z6MkpTHR8VNsBxYAAWHut2Geadd9jSwuBV8xRoAnwWsdvktH"
)

func TestCreateDIDKey(t *testing.T) {
	pub := base58.Decode(edPubKeyBase58)
	require.Len(t, pub, ed25519.PublicKeySize)

	didKey, keyID := CreateDIDKey(pub)
	require.Equal(t, edDIDKey, didKey)
	require.Equal(t, edDIDKey+"#z6MkpTHR8VNsBxYAAWHut2Geadd9jSwuBV8xRoAnwWsdvktH", keyID)
}

func TestParseEd25519PublicKey(t *testing.T) {
	pub := base58.Decode(edPubKeyBase58)
	fp := KeyFingerprint(ED25519PubKeyMultiCodec, pub)

	b64url, err := multibase.Encode(multibase.Base64url, append([]byte{0xed, 0x01}, pub...))
	require.NoError(t, err)

	t.Run("success - accepted forms", func(t *testing.T) {
		for _, in := range []string{
			hex.EncodeToString(pub),
			strings.ToUpper(hex.EncodeToString(pub)),
			edDIDKey,
			edDIDKey + "#" + fp,
			fp,
			b64url,
			edPubKeyBase58,
			"  " + edPubKeyBase58 + "\n",
		} {
			got, e := ParseEd25519PublicKey(in)
			require.NoError(t, e, in)
			require.Equal(t, pub, got, in)
		}
	})

	t.Run("error - wrong codec", func(t *testing.T) {
		_, e := ParseEd25519PublicKey(KeyFingerprint(X25519PubKeyMultiCodec, pub))
		require.True(t, errors.Is(e, api.ErrInvalidKey))
	})

	t.Run("error - wrong size or encoding", func(t *testing.T) {
		for _, in := range []string{"", "did:key:", "0OIl", base58.Encode(pub[:20])} {
			_, e := ParseEd25519PublicKey(in)
			require.True(t, errors.Is(e, api.ErrInvalidKey), in)
		}
	})
}
