/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package holder enables the Holder: an entity that receives SD-JWTs from the Issuer and has control over them.
package holder

import (
	"fmt"

	"github.com/coincord/ezrah-credential-go/pkg/doc/sdjwt/common"
	"github.com/coincord/ezrah-credential-go/pkg/doc/sdjwt/verifier"
)

// Claim defines claim.
type Claim struct {
	Disclosure string
	Name       string
	Value      interface{}
}

type parseOpts struct {
	verifierOpts []verifier.Opt
}

// ParseOpt is the SD-JWT Parser option.
type ParseOpt func(opts *parseOpts)

// WithSignatureVerifier option is for checking the issuer signature with pubKey.
func WithSignatureVerifier(pubKey interface{}) ParseOpt {
	return func(opts *parseOpts) {
		opts.verifierOpts = append(opts.verifierOpts, verifier.WithSignatureVerifier(pubKey))
	}
}

// WithIssuerSigningAlgorithms option is for defining secure signing algorithms (for holder verification).
func WithIssuerSigningAlgorithms(algorithms []string) ParseOpt {
	return func(opts *parseOpts) {
		opts.verifierOpts = append(opts.verifierOpts, verifier.WithSigningAlgorithms(algorithms))
	}
}

// Parse parses issuer SD-JWT and returns claims that can be selected.
// Every disclosure digest must be present in the SD-JWT, and the signature is checked when a verifier is set.
func Parse(combinedFormatForIssuance string, opts ...ParseOpt) ([]*Claim, error) {
	po := &parseOpts{}

	for _, opt := range opts {
		opt(po)
	}

	cp, err := common.ParseCompactPresentation(combinedFormatForIssuance)
	if err != nil {
		return nil, err
	}

	v := verifier.New(append(po.verifierOpts, verifier.WithDisclosureDigestCheck(true))...)

	if err = v.Verify(cp); err != nil {
		return nil, err
	}

	disclosed, err := common.GetDisclosureClaims(cp.Disclosures)
	if err != nil {
		return nil, err
	}

	claims := make([]*Claim, 0, len(disclosed))
	for _, c := range disclosed {
		claims = append(claims, &Claim{Disclosure: c.Disclosure, Name: c.Name, Value: c.Value})
	}

	return claims, nil
}

// CreatePresentation assembles the combined format for presentation from the disclosures
// of the named claims. The issuance is expected to have passed Parse.
func CreatePresentation(combinedFormatForIssuance string, claimsToDisclose []string) (string, error) {
	cp, err := common.ParseCompactPresentation(combinedFormatForIssuance)
	if err != nil {
		return "", err
	}

	disclosed, err := common.GetDisclosureClaims(cp.Disclosures)
	if err != nil {
		return "", err
	}

	byName := make(map[string]string, len(disclosed))
	for _, c := range disclosed {
		byName[c.Name] = c.Disclosure
	}

	selected := make([]string, 0, len(claimsToDisclose))

	for _, name := range claimsToDisclose {
		d, ok := byName[name]
		if !ok {
			return "", fmt.Errorf("no disclosure for claim '%s'", name)
		}

		selected = append(selected, d)
	}

	presentation := &common.CompactPresentation{
		Header:      cp.Header,
		Payload:     cp.Payload,
		Signature:   cp.Signature,
		Disclosures: selected,
	}

	return presentation.Serialize(), nil
}
