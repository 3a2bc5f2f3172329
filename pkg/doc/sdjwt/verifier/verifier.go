/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifier checks presented selective-disclosure tokens: the issuer signature over header.payload
// and the inclusion of every presented disclosure in the signed payload.
package verifier

import (
	"fmt"

	"github.com/go-jose/go-jose/v3"
	"golang.org/x/exp/slices"

	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	"github.com/coincord/ezrah-credential-go/pkg/doc/sdjwt/common"
)

// ErrVerification is wrapped by every verification failure. It wraps api.ErrVerification.
var ErrVerification = fmt.Errorf("sd-jwt: %w", api.ErrVerification)

type opts struct {
	signatureKey      interface{}
	signingAlgorithms []string
	digestCheck       bool
}

// Opt is the Verifier option.
type Opt func(opts *opts)

// WithSignatureVerifier enables signature verification against pubKey
// (ed25519.PublicKey, *ecdsa.PublicKey, *rsa.PublicKey or a jose.JSONWebKey).
func WithSignatureVerifier(pubKey interface{}) Opt {
	return func(opts *opts) {
		opts.signatureKey = pubKey
	}
}

// WithSigningAlgorithms option is for defining secure signing algorithms.
func WithSigningAlgorithms(algorithms []string) Opt {
	return func(opts *opts) {
		opts.signingAlgorithms = algorithms
	}
}

// WithDisclosureDigestCheck enables the check that each disclosure digest is listed in the payload "_sd" array.
func WithDisclosureDigestCheck(flag bool) Opt {
	return func(opts *opts) {
		opts.digestCheck = flag
	}
}

// Verifier verifies compact presentations.
type Verifier struct {
	opts
}

// New returns a Verifier. Without options Verify only checks the token structure.
func New(options ...Opt) *Verifier {
	o := opts{
		signingAlgorithms: []string{string(jose.EdDSA), string(jose.ES256), string(jose.RS256), string(jose.PS256)},
	}

	for _, opt := range options {
		opt(&o)
	}

	return &Verifier{opts: o}
}

// Verify runs the configured checks on cp.
func (v *Verifier) Verify(cp *common.CompactPresentation) error {
	if cp == nil {
		return fmt.Errorf("%w: nil presentation", ErrVerification)
	}

	if v.signatureKey != nil {
		if err := v.verifySignature(cp); err != nil {
			return err
		}
	}

	if v.digestCheck {
		if err := verifyDisclosures(cp); err != nil {
			return err
		}
	}

	return nil
}

func (v *Verifier) verifySignature(cp *common.CompactPresentation) error {
	jws, err := jose.ParseSigned(cp.SignedJWT())
	if err != nil {
		return fmt.Errorf("%w: parse jws: %s", ErrVerification, err.Error())
	}

	if len(jws.Signatures) != 1 {
		return fmt.Errorf("%w: expected one signature", ErrVerification)
	}

	// The none algorithm MUST NOT be accepted.
	alg := jws.Signatures[0].Header.Algorithm
	if alg == "" || alg == "none" || !slices.Contains(v.signingAlgorithms, alg) {
		return fmt.Errorf("%w: alg '%s' is not in the allowed list", ErrVerification, alg)
	}

	if _, err = jws.Verify(v.signatureKey); err != nil {
		return fmt.Errorf("%w: %s", ErrVerification, err.Error())
	}

	return nil
}

func verifyDisclosures(cp *common.CompactPresentation) error {
	claims, err := cp.DecodePayload()
	if err != nil {
		return err
	}

	sdAlg, err := common.GetSDAlg(claims)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrVerification, err.Error())
	}

	cryptoHash, err := common.GetCryptoHash(sdAlg)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrVerification, err.Error())
	}

	digests, err := common.GetDisclosureDigests(claims)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrVerification, err.Error())
	}

	seen := make(map[string]bool)

	for _, disclosure := range cp.Disclosures {
		if disclosure == "" {
			continue
		}

		if seen[disclosure] {
			return fmt.Errorf("%w: duplicate disclosure", ErrVerification)
		}

		seen[disclosure] = true

		digest, hashErr := common.GetHash(cryptoHash, disclosure)
		if hashErr != nil {
			return fmt.Errorf("%w: %s", ErrVerification, hashErr.Error())
		}

		if !digests[digest] {
			return fmt.Errorf("%w: disclosure digest '%s' not found in SD-JWT disclosure digests",
				ErrVerification, digest)
		}
	}

	return nil
}
