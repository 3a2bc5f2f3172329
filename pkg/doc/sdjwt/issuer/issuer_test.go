/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issuer

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"strings"
	"testing"

	"github.com/go-jose/go-jose/v3"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	cryptoapi "github.com/coincord/ezrah-credential-go/pkg/crypto"
	"github.com/coincord/ezrah-credential-go/pkg/crypto/envelope"
	"github.com/coincord/ezrah-credential-go/pkg/doc/sdjwt/common"
	"github.com/coincord/ezrah-credential-go/pkg/doc/util/codec"
	mockcrypto "github.com/coincord/ezrah-credential-go/pkg/internal/gomocks/crypto"
)

const sampleSalt = "3jqcb67z9wks08zwiK7EyQ"

func createClaims() map[string]interface{} {
	return map[string]interface{}{
		"given_name":  "Albert",
		"family_name": "Einstein",
		"age":         76,
		"nationality": "CH",
	}
}

func TestPackClaims(t *testing.T) {
	t.Run("success - default options", func(t *testing.T) {
		claims := createClaims()

		packed, err := PackClaims(claims, []string{"given_name", "age"})
		require.NoError(t, err)
		require.Equal(t, "sha-256", packed.HashAlg)
		require.Len(t, packed.Disclosures, 2)

		require.Equal(t, "Einstein", packed.Claims["family_name"])
		require.Equal(t, "CH", packed.Claims["nationality"])
		require.NotContains(t, packed.Claims, "given_name")
		require.NotContains(t, packed.Claims, "age")
		require.Equal(t, "sha-256", packed.Claims[common.SDAlgorithmKey])
		require.Len(t, packed.Claims[common.SDKey], 2)

		// input is left untouched.
		require.Equal(t, "Albert", claims["given_name"])

		dcs, err := common.GetDisclosureClaims(packed.Disclosures)
		require.NoError(t, err)
		require.Equal(t, "given_name", dcs[0].Name)
		require.Equal(t, "age", dcs[1].Name)
		require.Len(t, dcs[0].Salt, 36, "uuid salt")

		digests := packed.Claims[common.SDKey].([]string)
		for _, d := range packed.Disclosures {
			digest, e := common.GetHash(crypto.SHA256, d)
			require.NoError(t, e)
			require.Contains(t, digests, digest)
		}
	})

	t.Run("success - fixed salt and sha-512", func(t *testing.T) {
		packed, err := PackClaims(createClaims(), []string{"nationality"},
			WithSaltFnc(func() (string, error) { return sampleSalt, nil }),
			WithHashAlgorithm(crypto.SHA512))
		require.NoError(t, err)
		require.Equal(t, "sha-512", packed.HashAlg)

		decoded, err := codec.DecodeBase64URLString(packed.Disclosures[0])
		require.NoError(t, err)
		require.Equal(t, `["3jqcb67z9wks08zwiK7EyQ","nationality","CH"]`, decoded)
	})

	t.Run("success - nothing disclosable", func(t *testing.T) {
		packed, err := PackClaims(nil, nil)
		require.NoError(t, err)
		require.Empty(t, packed.Disclosures)
		require.Equal(t, []string{}, packed.Claims[common.SDKey])
	})

	t.Run("error - unknown claim", func(t *testing.T) {
		_, err := PackClaims(createClaims(), []string{"shoe_size"})
		require.EqualError(t, err, "disclosable claim 'shoe_size' not found")
	})

	t.Run("error - reserved key", func(t *testing.T) {
		_, err := PackClaims(map[string]interface{}{common.SDKey: []string{}}, nil)
		require.Error(t, err)
	})

	t.Run("error - salt and marshal failures", func(t *testing.T) {
		_, err := PackClaims(createClaims(), []string{"age"},
			WithSaltFnc(func() (string, error) { return "", errors.New("no salt") }))
		require.EqualError(t, err, "create disclosure: generate salt: no salt")

		_, err = PackClaims(createClaims(), []string{"age"},
			WithJSONMarshaller(func(interface{}) ([]byte, error) { return nil, errors.New("no json") }))
		require.EqualError(t, err, "create disclosure: marshal disclosure: no json")

		_, err = PackClaims(createClaims(), []string{"age"}, WithHashAlgorithm(0))
		require.Error(t, err)
	})
}

func rsaPEM(t *testing.T) (string, string) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	spki, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: spki})),
		string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)}))
}

func TestIssueEncrypted(t *testing.T) {
	pub, priv := rsaPEM(t)
	sealer := envelope.New()

	req, err := IssueEncrypted(sealer, createClaims(), []string{"given_name", "family_name"}, pub)
	require.NoError(t, err)
	require.Equal(t, "sha-256", req.HashAlg)
	require.Equal(t, cryptoapi.RSAOAEPAESGCMAlg, req.EncryptedDisclosures.Alg)

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &wire))
	require.Contains(t, wire, "_hash_alg")
	require.Contains(t, wire, "packedClaims")
	require.Contains(t, wire, "encrypted_disclosures")

	disclosures, err := OpenDisclosures(sealer, req.EncryptedDisclosures, priv)
	require.NoError(t, err)

	dcs, err := common.GetDisclosureClaims(disclosures)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"given_name": "Albert", "family_name": "Einstein"},
		common.DisclosedClaims(dcs))

	_, err = IssueEncrypted(sealer, createClaims(), []string{"missing"}, pub)
	require.Error(t, err)
}

func TestSealDisclosuresWithMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sealer := mockcrypto.NewMockRSAEnvelope(ctrl)

	sealer.EXPECT().EncryptRSA([]byte(`[]`), "pem").Return(&cryptoapi.EncPayload{Ciphertext: "ct"}, nil)

	enc, err := SealDisclosures(sealer, nil, "pem")
	require.NoError(t, err)
	require.Equal(t, "ct", enc.Ciphertext)

	sealer.EXPECT().EncryptRSA(gomock.Any(), "pem").Return(nil, errors.New("bad key"))

	_, err = SealDisclosures(sealer, []string{"d"}, "pem")
	require.EqualError(t, err, "seal disclosures: bad key")

	sealer.EXPECT().DecryptRSA(gomock.Any(), "pem").Return([]byte(`{"not":"an array"}`), nil)

	_, err = OpenDisclosures(sealer, &cryptoapi.EncPayload{}, "pem")
	require.Error(t, err)

	sealer.EXPECT().DecryptRSA(gomock.Any(), "pem").Return(nil, errors.New("decryption failed"))

	_, err = OpenDisclosures(sealer, &cryptoapi.EncPayload{}, "pem")
	require.EqualError(t, err, "open disclosures: decryption failed")
}

func TestSign(t *testing.T) {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	packed, err := PackClaims(createClaims(), []string{"age"})
	require.NoError(t, err)

	cp, err := Sign(packed, privKey, jose.EdDSA)
	require.NoError(t, err)
	require.Equal(t, packed.Disclosures, cp.Disclosures)
	require.Equal(t, 2, strings.Count(cp.Serialize(), "."))

	header, err := cp.DecodeHeader()
	require.NoError(t, err)
	require.Equal(t, "EdDSA", header["alg"])

	jws, err := jose.ParseSigned(cp.SignedJWT())
	require.NoError(t, err)

	_, err = jws.Verify(pubKey)
	require.NoError(t, err)

	_, err = Sign(nil, privKey, jose.EdDSA)
	require.Error(t, err)

	_, err = Sign(packed, "not a key", jose.EdDSA)
	require.Error(t, err)
}
