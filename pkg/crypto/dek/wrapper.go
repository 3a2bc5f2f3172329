/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dek wraps one data-encryption key for many recipients.
//
// Each recipient gets an independent X25519 envelope of the key, addressed to the X25519 form of its Ed25519
// public key. A recipient whose key cannot be used is logged and skipped; the others are still wrapped.
package dek

import (
	"bytes"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/coincord/ezrah-credential-go/component/log"
	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	cryptoapi "github.com/coincord/ezrah-credential-go/pkg/crypto"
	"github.com/coincord/ezrah-credential-go/pkg/crypto/cryptoutil"
	"github.com/coincord/ezrah-credential-go/pkg/crypto/cryptoutil/fingerprint"
	"github.com/coincord/ezrah-credential-go/pkg/doc/util/codec"
)

const loggerModule = "ezrah/dek"

var logger = log.New(loggerModule)

// ErrSlotNotFound is returned by UnwrapForRecipient when the requested slot is absent.
// It wraps api.ErrMalformedPayload.
var ErrSlotNotFound = fmt.Errorf("dek: slot not found: %w", api.ErrMalformedPayload)

// SlotLabeler names the slot of the recipient at zero based index i holding Ed25519 public key recipient.
type SlotLabeler func(i int, recipient []byte) string

// PositionalSlotLabeler labels slots recipient_1, recipient_2, ... by input position.
func PositionalSlotLabeler(i int, _ []byte) string {
	return cryptoapi.SlotLabel(i)
}

// FingerprintSlotLabeler labels slots with the did:key fingerprint of the recipient key, so a slot stays
// attached to its recipient whatever order the list travels in. Not understood by positional consumers.
func FingerprintSlotLabeler(_ int, recipient []byte) string {
	return fingerprint.KeyFingerprint(fingerprint.ED25519PubKeyMultiCodec, recipient)
}

type opts struct {
	maxConcurrency int
	labeler        SlotLabeler
}

// Opt configures a Wrapper.
type Opt func(*opts)

// WithMaxConcurrency bounds the number of recipients wrapped at the same time. n <= 0 means no bound.
func WithMaxConcurrency(n int) Opt {
	return func(o *opts) {
		o.maxConcurrency = n
	}
}

// WithSlotLabeler replaces the positional slot labels.
func WithSlotLabeler(l SlotLabeler) Opt {
	return func(o *opts) {
		o.labeler = l
	}
}

// Wrapper wraps content keys for recipient lists.
type Wrapper struct {
	sealer         cryptoapi.X25519Envelope
	maxConcurrency int
	labeler        SlotLabeler
}

// New returns a Wrapper sealing with sealer.
func New(sealer cryptoapi.X25519Envelope, options ...Opt) *Wrapper {
	o := &opts{labeler: PositionalSlotLabeler}

	for _, opt := range options {
		opt(o)
	}

	if o.labeler == nil {
		o.labeler = PositionalSlotLabeler
	}

	return &Wrapper{sealer: sealer, maxConcurrency: o.maxConcurrency, labeler: o.labeler}
}

// WrapForRecipients seals contentKey for every Ed25519 public key in recipients. Slots follow the input order.
// A recipient that fails is logged and left out; the call itself does not fail.
func (w *Wrapper) WrapForRecipients(contentKey []byte, recipients [][]byte) *cryptoapi.WrappedDeks {
	results := make([]*cryptoapi.WrappedDek, len(recipients))

	var g errgroup.Group

	if w.maxConcurrency > 0 {
		g.SetLimit(w.maxConcurrency)
	}

	for i, r := range recipients {
		i, r := i, r

		g.Go(func() error {
			dek, err := w.wrap(contentKey, r)
			if err != nil {
				logger.Warnf("skipping recipient %d of %d: %s", i+1, len(recipients), err.Error())

				return nil
			}

			results[i] = dek

			return nil
		})
	}

	// tasks never return errors, Wait only joins them.
	_ = g.Wait()

	deks := cryptoapi.NewWrappedDeks()

	for i, dek := range results {
		if dek == nil {
			continue
		}

		deks.Set(w.labeler(i, recipients[i]), dek)
	}

	logger.Debugf("wrapped content key for %d of %d recipients", deks.Len(), len(recipients))

	return deks
}

func (w *Wrapper) wrap(contentKey, recipient []byte) (*cryptoapi.WrappedDek, error) {
	xPub, err := cryptoutil.PublicEd25519toCurve25519(recipient)
	if err != nil {
		return nil, err
	}

	return w.sealer.EncryptX25519(contentKey, xPub, nil)
}

// UnwrapForRecipient opens the wrapped key in slot with the recipient's Ed25519 private key
// (32 byte seed or 64 byte key). The slot must be addressed to that key.
func (w *Wrapper) UnwrapForRecipient(deks *cryptoapi.WrappedDeks, slot string, edPriv []byte) ([]byte, error) {
	dek, ok := deks.Get(slot)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}

	xPriv, err := cryptoutil.SecretEd25519toCurve25519(edPriv)
	if err != nil {
		return nil, fmt.Errorf("unwrap %s: %w", slot, err)
	}

	xPub, err := cryptoutil.PublicCurve25519(xPriv)
	if err != nil {
		return nil, fmt.Errorf("unwrap %s: %w", slot, err)
	}

	addressed, err := codec.DecodeHex(dek.RecipientPubKey)
	if err != nil {
		return nil, fmt.Errorf("unwrap %s: recipient key: %w", slot, err)
	}

	if !bytes.Equal(addressed, xPub) {
		return nil, fmt.Errorf("unwrap %s: %w: slot is addressed to another recipient", slot, api.ErrInvalidKey)
	}

	return w.sealer.DecryptX25519(dek, xPriv)
}
