/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ezrah provides the confidentiality layer for credential issuance and presentation.
//
// # Packages for end developer usage
//
// pkg/crypto/envelope: Hybrid RSA-OAEP+AES-GCM and X25519+AES-GCM encryption of credential payloads.
//
// pkg/crypto/dek: Wraps one content key for many Ed25519 recipients, tolerating per-recipient failures.
//
// pkg/client/presentation: Decodes presentation webhook events into header, payload and presented claims.
//
// pkg/doc/sdjwt: Packs, signs and verifies selectively disclosable claims.
//
// pkg/config: YAML configuration for log levels and the components above.
//
// Basic workflow
//
//  1. Issue: pack claims with issuer.PackClaims and seal the disclosures for the receiver with envelope.Crypto.
//  2. Share: wrap the content key for every recipient with dek.Wrapper.
//  3. Receive: decode presentation events with presentation.Decoder.
package ezrah
