/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"crypto"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	"github.com/coincord/ezrah-credential-go/pkg/doc/util/codec"
)

// CombinedFormatSeparator is disclosure separator.
const (
	CombinedFormatSeparator = "~"
	JWTSeparator            = "."

	SDAlgorithmKey = "_sd_alg"
	SDKey          = "_sd"

	// DefaultSDAlg is used when a payload carries no _sd_alg.
	DefaultSDAlg = "sha-256"

	jwtParts        = 3
	disclosureParts = 3
	saltIndex       = 0
	nameIndex       = 1
	valueIndex      = 2
)

// CompactPresentation is a presented token split into its parts:
//
//	header.payload.signature~disclosure~...~disclosure
//
// Disclosure slots keep their positions. An empty slot is kept as "".
type CompactPresentation struct {
	Header      string
	Payload     string
	Signature   string
	Disclosures []string
}

// ParseCompactPresentation splits token on '.' into exactly three parts and the third part on '~'.
// The first '~' segment is the signature. A '~' inside a signature would be read as a separator.
func ParseCompactPresentation(token string) (*CompactPresentation, error) {
	parts := strings.Split(token, JWTSeparator)
	if len(parts) != jwtParts {
		return nil, fmt.Errorf("%w: token has %d dot separated parts, want %d",
			api.ErrMalformedToken, len(parts), jwtParts)
	}

	rest := strings.Split(parts[2], CombinedFormatSeparator)

	return &CompactPresentation{
		Header:      parts[0],
		Payload:     parts[1],
		Signature:   rest[0],
		Disclosures: rest[1:],
	}, nil
}

// SignedJWT returns the header.payload.signature part of the token.
func (cp *CompactPresentation) SignedJWT() string {
	return cp.Header + JWTSeparator + cp.Payload + JWTSeparator + cp.Signature
}

// Serialize will assemble the compact presentation.
func (cp *CompactPresentation) Serialize() string {
	presentation := cp.SignedJWT()
	for _, disclosure := range cp.Disclosures {
		presentation += CombinedFormatSeparator + disclosure
	}

	return presentation
}

// DecodeHeader returns the decoded JOSE header.
func (cp *CompactPresentation) DecodeHeader() (map[string]interface{}, error) {
	return decodeSegment("header", cp.Header)
}

// DecodePayload returns the decoded claims.
func (cp *CompactPresentation) DecodePayload() (map[string]interface{}, error) {
	return decodeSegment("payload", cp.Payload)
}

func decodeSegment(name, segment string) (map[string]interface{}, error) {
	raw, err := codec.DecodeBase64URL(segment)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	var obj map[string]interface{}

	if err = json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: %s is not a JSON object", api.ErrMalformedToken, name)
	}

	return obj, nil
}

// DisclosureClaim defines claim.
type DisclosureClaim struct {
	Disclosure string
	Salt       string
	Name       string
	Value      interface{}
}

// GetDisclosureClaims de-codes disclosures. Empty slots are skipped.
func GetDisclosureClaims(disclosures []string) ([]*DisclosureClaim, error) {
	var claims []*DisclosureClaim

	for i, disclosure := range disclosures {
		if disclosure == "" {
			continue
		}

		claim, err := getDisclosureClaim(disclosure)
		if err != nil {
			return nil, fmt.Errorf("disclosure %d: %w", i+1, err)
		}

		claims = append(claims, claim)
	}

	return claims, nil
}

func getDisclosureClaim(disclosure string) (*DisclosureClaim, error) {
	decoded, err := codec.DecodeBase64URL(disclosure)
	if err != nil {
		return nil, err
	}

	var disclosureArr []interface{}

	err = json.Unmarshal(decoded, &disclosureArr)
	if err != nil {
		return nil, fmt.Errorf("%w: disclosure is not a JSON array", api.ErrMalformedToken)
	}

	if len(disclosureArr) != disclosureParts {
		return nil, fmt.Errorf("%w: disclosure array size[%d] must be %d",
			api.ErrMalformedToken, len(disclosureArr), disclosureParts)
	}

	name, ok := disclosureArr[nameIndex].(string)
	if !ok {
		return nil, fmt.Errorf("%w: disclosure name type[%T] must be string",
			api.ErrMalformedToken, disclosureArr[nameIndex])
	}

	// salts are opaque, non-string salts are kept in their JSON text form.
	salt, ok := disclosureArr[saltIndex].(string)
	if !ok {
		b, _ := json.Marshal(disclosureArr[saltIndex]) //nolint:errcheck

		salt = string(b)
	}

	return &DisclosureClaim{Disclosure: disclosure, Salt: salt, Name: name, Value: disclosureArr[valueIndex]}, nil
}

// DisclosedClaims folds claims into a name to value map. A later claim with the same name wins.
func DisclosedClaims(claims []*DisclosureClaim) map[string]interface{} {
	out := make(map[string]interface{}, len(claims))

	for _, c := range claims {
		out[c.Name] = c.Value
	}

	return out
}

// GetHash calculates hash of data using hash function identified by hash.
func GetHash(hash crypto.Hash, value string) (string, error) {
	if !hash.Available() {
		return "", fmt.Errorf("hash function not available for: %d", hash)
	}

	h := hash.New()

	if _, hashErr := h.Write([]byte(value)); hashErr != nil {
		return "", hashErr
	}

	return codec.EncodeBase64URL(h.Sum(nil)), nil
}

// GetCryptoHash returns crypto hash from SD algorithm.
func GetCryptoHash(sdAlg string) (crypto.Hash, error) {
	var err error

	var cryptoHash crypto.Hash

	switch strings.ToUpper(sdAlg) {
	case crypto.SHA256.String():
		cryptoHash = crypto.SHA256
	case crypto.SHA384.String():
		cryptoHash = crypto.SHA384
	case crypto.SHA512.String():
		cryptoHash = crypto.SHA512
	default:
		err = fmt.Errorf("%s '%s' not supported", SDAlgorithmKey, sdAlg)
	}

	return cryptoHash, err
}

// GetSDAlg returns SD algorithm from claims, DefaultSDAlg when absent.
func GetSDAlg(claims map[string]interface{}) (string, error) {
	obj, ok := claims[SDAlgorithmKey]
	if !ok {
		return DefaultSDAlg, nil
	}

	str, ok := obj.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", SDAlgorithmKey)
	}

	return str, nil
}

// GetDisclosureDigests returns digests from claims map.
func GetDisclosureDigests(claims map[string]interface{}) (map[string]bool, error) {
	disclosuresObj, ok := claims[SDKey]
	if !ok {
		return nil, nil
	}

	disclosures, err := stringArray(disclosuresObj)
	if err != nil {
		return nil, fmt.Errorf("get disclosure digests: %w", err)
	}

	return sliceToMap(disclosures), nil
}

func stringArray(entry interface{}) ([]string, error) {
	if entry == nil {
		return nil, nil
	}

	entries, ok := entry.([]interface{})
	if !ok {
		return nil, fmt.Errorf("entry type[%T] is not an array", entry)
	}

	var result []string

	for _, e := range entries {
		if eStr, ok := e.(string); ok {
			result = append(result, eStr)
		} else {
			return nil, fmt.Errorf("entry item type[%T] is not a string", e)
		}
	}

	return result, nil
}

func sliceToMap(ids []string) map[string]bool {
	values := make(map[string]bool)
	for _, id := range ids {
		values[id] = true
	}

	return values
}
