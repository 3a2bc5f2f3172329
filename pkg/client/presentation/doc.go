/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package presentation decodes presentation webhook events into header, payload and presented claims.
//
// An event carries presentations in compact selective-disclosure form:
//
//	header.payload.signature~disclosure~...~disclosure
//
// Each non-empty disclosure is base64url JSON [salt, name, value]. The decoded claims are added to the
// decoded payload under "presented_claims".
//
// 1. Create your decoder:
//
//	decoder := presentation.New()
//
// 2. Decode a webhook body, encrypted for your RSA key or not:
//
//	event, err := decoder.DecodeEventJSON(body, rsaPrivateKeyPEM)
//	if err != nil {
//		var perr *presentation.Error
//		if errors.As(err, &perr) {
//			// perr.Index is the failing presentation
//		}
//	}
//
// 3. Optionally verify every presentation before it is returned:
//
//	decoder := presentation.New(presentation.WithVerifier(verifier.New(
//		verifier.WithSignatureVerifier(issuerKey),
//		verifier.WithDisclosureDigestCheck(true),
//	)))
package presentation
