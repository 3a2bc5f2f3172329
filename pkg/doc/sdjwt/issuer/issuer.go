/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package issuer packs credential claims into selective-disclosure form and seals the disclosures for the
// receiving party.
//
// Disclosable claims are replaced by the digests of their disclosures in the payload "_sd" array. The
// disclosures themselves travel separately, RSA encrypted for the receiver.
package issuer

import (
	"crypto"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-jose/go-jose/v3"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/coincord/ezrah-credential-go/component/log"
	cryptoapi "github.com/coincord/ezrah-credential-go/pkg/crypto"
	"github.com/coincord/ezrah-credential-go/pkg/doc/sdjwt/common"
	"github.com/coincord/ezrah-credential-go/pkg/doc/util/codec"
)

const defaultHash = crypto.SHA256

var logger = log.New("ezrah/issuer")

// packOpts holds options for packing claims.
type packOpts struct {
	HashAlg crypto.Hash

	jsonMarshal func(v interface{}) ([]byte, error)
	getSalt     func() (string, error)
}

// Opt is the claim packing option.
type Opt func(opts *packOpts)

// WithJSONMarshaller is option is for marshalling disclosure.
func WithJSONMarshaller(jsonMarshal func(v interface{}) ([]byte, error)) Opt {
	return func(opts *packOpts) {
		opts.jsonMarshal = jsonMarshal
	}
}

// WithSaltFnc is option for generating disclosure salts. The default is a random UUID.
func WithSaltFnc(fnc func() (string, error)) Opt {
	return func(opts *packOpts) {
		opts.getSalt = fnc
	}
}

// WithHashAlgorithm is option for hashing disclosures.
func WithHashAlgorithm(alg crypto.Hash) Opt {
	return func(opts *packOpts) {
		opts.HashAlg = alg
	}
}

// PackedClaims is the result of PackClaims.
type PackedClaims struct {
	// HashAlg is the _sd_alg value, e.g. "sha-256".
	HashAlg string
	// Claims holds the clear claims plus "_sd" and "_sd_alg".
	Claims map[string]interface{}
	// Disclosures are in the order of the disclose list.
	Disclosures []string
}

// PackClaims makes every claim named in disclose selectively disclosable. Other claims stay in clear.
func PackClaims(claims map[string]interface{}, disclose []string, opts ...Opt) (*PackedClaims, error) {
	pOpts := &packOpts{
		HashAlg:     defaultHash,
		jsonMarshal: json.Marshal,
		getSalt:     generateSalt,
	}

	for _, opt := range opts {
		opt(pOpts)
	}

	packed := maps.Clone(claims)
	if packed == nil {
		packed = map[string]interface{}{}
	}

	if _, ok := packed[common.SDKey]; ok {
		return nil, fmt.Errorf("claims must not contain '%s'", common.SDKey)
	}

	disclosures := make([]string, 0, len(disclose))
	digests := make([]string, 0, len(disclose))

	for _, name := range disclose {
		value, ok := packed[name]
		if !ok {
			return nil, fmt.Errorf("disclosable claim '%s' not found", name)
		}

		disclosure, err := createDisclosure(name, value, pOpts)
		if err != nil {
			return nil, fmt.Errorf("create disclosure: %w", err)
		}

		digest, err := common.GetHash(pOpts.HashAlg, disclosure)
		if err != nil {
			return nil, fmt.Errorf("hash disclosure: %w", err)
		}

		delete(packed, name)

		disclosures = append(disclosures, disclosure)
		digests = append(digests, digest)
	}

	// sorted digests do not reveal the claim order.
	slices.Sort(digests)

	hashAlg := strings.ToLower(pOpts.HashAlg.String())

	packed[common.SDKey] = digests
	packed[common.SDAlgorithmKey] = hashAlg

	return &PackedClaims{HashAlg: hashAlg, Claims: packed, Disclosures: disclosures}, nil
}

func createDisclosure(key string, value interface{}, opts *packOpts) (string, error) {
	salt, err := opts.getSalt()
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	disclosure := []interface{}{salt, key, value}

	disclosureBytes, err := opts.jsonMarshal(disclosure)
	if err != nil {
		return "", fmt.Errorf("marshal disclosure: %w", err)
	}

	return codec.EncodeBase64URL(disclosureBytes), nil
}

func generateSalt() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// SealDisclosures encrypts the JSON array of disclosures for the receiver's RSA public key.
func SealDisclosures(sealer cryptoapi.RSAEnvelope, disclosures []string,
	receiverPublicKeyPEM string) (*cryptoapi.EncPayload, error) {
	if disclosures == nil {
		disclosures = []string{}
	}

	raw, err := json.Marshal(disclosures)
	if err != nil {
		return nil, fmt.Errorf("marshal disclosures: %w", err)
	}

	enc, err := sealer.EncryptRSA(raw, receiverPublicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("seal disclosures: %w", err)
	}

	return enc, nil
}

// OpenDisclosures reverses SealDisclosures.
func OpenDisclosures(sealer cryptoapi.RSAEnvelope, enc *cryptoapi.EncPayload,
	receiverPrivateKeyPEM string) ([]string, error) {
	raw, err := sealer.DecryptRSA(enc, receiverPrivateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("open disclosures: %w", err)
	}

	var disclosures []string

	if err = json.Unmarshal(raw, &disclosures); err != nil {
		return nil, fmt.Errorf("open disclosures: %w", err)
	}

	return disclosures, nil
}

// PackedRequest is the encrypted credential issuance input handed to the backend.
type PackedRequest struct {
	HashAlg              string                 `json:"_hash_alg"`
	PackedClaims         map[string]interface{} `json:"packedClaims"`
	EncryptedDisclosures *cryptoapi.EncPayload  `json:"encrypted_disclosures"`
}

// NewPackedRequest assembles a PackedRequest.
func NewPackedRequest(packed *PackedClaims, encrypted *cryptoapi.EncPayload) *PackedRequest {
	return &PackedRequest{
		HashAlg:              packed.HashAlg,
		PackedClaims:         packed.Claims,
		EncryptedDisclosures: encrypted,
	}
}

// IssueEncrypted packs claims and seals their disclosures for the receiver in one step.
func IssueEncrypted(sealer cryptoapi.RSAEnvelope, claims map[string]interface{}, disclose []string,
	receiverPublicKeyPEM string, opts ...Opt) (*PackedRequest, error) {
	packed, err := PackClaims(claims, disclose, opts...)
	if err != nil {
		return nil, err
	}

	enc, err := SealDisclosures(sealer, packed.Disclosures, receiverPublicKeyPEM)
	if err != nil {
		return nil, err
	}

	logger.Debugf("packed %d claims, %d disclosable", len(claims), len(packed.Disclosures))

	return NewPackedRequest(packed, enc), nil
}

// Sign signs the packed claims as a compact JWS and attaches the disclosures, producing a presentable token.
func Sign(packed *PackedClaims, key interface{}, alg jose.SignatureAlgorithm) (*common.CompactPresentation, error) {
	if packed == nil {
		return nil, errors.New("sign: nil claims")
	}

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: alg, Key: key}, (&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return nil, fmt.Errorf("sign: create signer: %w", err)
	}

	payload, err := json.Marshal(packed.Claims)
	if err != nil {
		return nil, fmt.Errorf("sign: marshal claims: %w", err)
	}

	jws, err := signer.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}

	compact, err := jws.CompactSerialize()
	if err != nil {
		return nil, fmt.Errorf("sign: serialize: %w", err)
	}

	cp, err := common.ParseCompactPresentation(compact)
	if err != nil {
		return nil, err
	}

	cp.Disclosures = append([]string(nil), packed.Disclosures...)

	return cp, nil
}
