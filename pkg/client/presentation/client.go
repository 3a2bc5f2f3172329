/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presentation

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/coincord/ezrah-credential-go/component/log"
	"github.com/coincord/ezrah-credential-go/pkg/common/api"
	cryptoapi "github.com/coincord/ezrah-credential-go/pkg/crypto"
	"github.com/coincord/ezrah-credential-go/pkg/crypto/envelope"
	"github.com/coincord/ezrah-credential-go/pkg/doc/sdjwt/common"
)

// PresentedClaimsKey is the payload member holding the disclosed claims.
const PresentedClaimsKey = "presented_claims"

var logger = log.New("ezrah/presentation")

// EventEnvelope is a webhook event. Data is an EncPayload when Encrypted is set and a JSON string otherwise.
type EventEnvelope struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Encrypted bool        `json:"encrypted"`
}

// DecodedPresentation is one decoded presentation.
type DecodedPresentation struct {
	Header    map[string]interface{} `json:"header"`
	Payload   map[string]interface{} `json:"payload"`
	Signature string                 `json:"signature"`
}

// PresentedClaims returns the claims disclosed by the presentation.
func (p *DecodedPresentation) PresentedClaims() map[string]interface{} {
	claims, _ := p.Payload[PresentedClaimsKey].(map[string]interface{}) //nolint:errcheck

	return claims
}

// DecodedEvent is a decoded webhook event.
type DecodedEvent struct {
	Event         string                 `json:"event"`
	Presentations []*DecodedPresentation `json:"presentations"`
}

// Error reports the presentation that failed to decode.
type Error struct {
	Index int
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("presentation %d: %s", e.Index, e.Err.Error())
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Verifier checks a presentation before it is returned.
type Verifier interface {
	Verify(cp *common.CompactPresentation) error
}

type opts struct {
	sealer   cryptoapi.RSAEnvelope
	verifier Verifier
}

// Opt configures a Decoder.
type Opt func(*opts)

// WithRSAEnvelope sets the envelope used to decrypt encrypted events.
func WithRSAEnvelope(sealer cryptoapi.RSAEnvelope) Opt {
	return func(o *opts) {
		o.sealer = sealer
	}
}

// WithVerifier makes the Decoder verify every presentation.
func WithVerifier(v Verifier) Opt {
	return func(o *opts) {
		o.verifier = v
	}
}

// Decoder decodes presentation events.
type Decoder struct {
	sealer   cryptoapi.RSAEnvelope
	verifier Verifier
}

// New returns a Decoder.
func New(options ...Opt) *Decoder {
	o := &opts{}

	for _, opt := range options {
		opt(o)
	}

	if o.sealer == nil {
		o.sealer = envelope.New()
	}

	return &Decoder{sealer: o.sealer, verifier: o.verifier}
}

type eventData struct {
	Presentations []struct {
		Presentation string `json:"presentation" mapstructure:"presentation"`
	} `json:"presentations" mapstructure:"presentations"`
}

// DecodeEventJSON parses a raw webhook body and decodes it.
func (d *Decoder) DecodeEventJSON(body []byte, rsaPrivateKeyPEM string) (*DecodedEvent, error) {
	env := &EventEnvelope{}

	if err := json.Unmarshal(body, env); err != nil {
		return nil, errors.Wrap(api.ErrMalformedPayload, "parse event envelope")
	}

	return d.DecodeEventPayload(env, rsaPrivateKeyPEM)
}

// DecodeEventPayload decrypts the event data when needed and decodes every presentation in it.
// The first failing presentation aborts the call with an *Error.
func (d *Decoder) DecodeEventPayload(env *EventEnvelope, rsaPrivateKeyPEM string) (*DecodedEvent, error) {
	if env == nil {
		return nil, errors.Wrap(api.ErrMalformedPayload, "nil event envelope")
	}

	data, err := d.readEventData(env, rsaPrivateKeyPEM)
	if err != nil {
		return nil, err
	}

	event := &DecodedEvent{
		Event:         env.Event,
		Presentations: make([]*DecodedPresentation, 0, len(data.Presentations)),
	}

	for i, p := range data.Presentations {
		decoded, err := d.DecodePresentation(p.Presentation)
		if err != nil {
			return nil, &Error{Index: i, Err: err}
		}

		event.Presentations = append(event.Presentations, decoded)
	}

	logger.Debugf("decoded %d presentations of event '%s'", len(event.Presentations), env.Event)

	return event, nil
}

func (d *Decoder) readEventData(env *EventEnvelope, rsaPrivateKeyPEM string) (*eventData, error) {
	var (
		raw []byte
		err error
	)

	if env.Encrypted {
		payload, e := toEncPayload(env.Data)
		if e != nil {
			return nil, e
		}

		raw, err = d.sealer.DecryptRSA(payload, rsaPrivateKeyPEM)
		if err != nil {
			return nil, errors.Wrap(err, "decrypt event data")
		}
	} else {
		switch v := env.Data.(type) {
		case string:
			raw = []byte(v)
		case []byte:
			raw = v
		case json.RawMessage:
			raw = v
		case map[string]interface{}:
			raw, err = json.Marshal(v)
			if err != nil {
				return nil, errors.Wrapf(api.ErrMalformedPayload, "event data: %s", err.Error())
			}
		default:
			return nil, errors.Wrapf(api.ErrMalformedPayload, "unencrypted event data of type %T", env.Data)
		}
	}

	data := &eventData{}

	var probe map[string]json.RawMessage

	if err = json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.Wrap(api.ErrMalformedPayload, "event data is not a JSON object")
	}

	if _, ok := probe["presentations"]; !ok {
		return nil, errors.Wrap(api.ErrMalformedPayload, "event data has no presentations")
	}

	if err = json.Unmarshal(raw, data); err != nil {
		return nil, errors.Wrapf(api.ErrMalformedPayload, "event data: %s", err.Error())
	}

	return data, nil
}

// toEncPayload accepts the shapes an EncPayload takes after passing through JSON decoders.
func toEncPayload(data interface{}) (*cryptoapi.EncPayload, error) {
	payload := &cryptoapi.EncPayload{}

	switch v := data.(type) {
	case *cryptoapi.EncPayload:
		if v == nil {
			return nil, errors.Wrap(api.ErrMalformedPayload, "nil encrypted payload")
		}

		return v, nil
	case cryptoapi.EncPayload:
		return &v, nil
	case map[string]interface{}:
		if err := mapstructure.Decode(v, payload); err != nil {
			return nil, errors.Wrapf(api.ErrMalformedPayload, "encrypted payload: %s", err.Error())
		}

		return payload, nil
	case string:
		return unmarshalEncPayload([]byte(v))
	case []byte:
		return unmarshalEncPayload(v)
	case json.RawMessage:
		return unmarshalEncPayload(v)
	default:
		return nil, errors.Wrapf(api.ErrMalformedPayload, "encrypted payload of type %T", data)
	}
}

func unmarshalEncPayload(raw []byte) (*cryptoapi.EncPayload, error) {
	payload := &cryptoapi.EncPayload{}

	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, errors.Wrap(api.ErrMalformedPayload, "encrypted payload is not a JSON object")
	}

	return payload, nil
}

// DecodePresentation decodes one compact presentation token.
func (d *Decoder) DecodePresentation(token string) (*DecodedPresentation, error) {
	cp, err := common.ParseCompactPresentation(token)
	if err != nil {
		return nil, err
	}

	claims, err := common.GetDisclosureClaims(cp.Disclosures)
	if err != nil {
		return nil, errors.Wrap(err, "disclosures")
	}

	header, err := cp.DecodeHeader()
	if err != nil {
		return nil, err
	}

	payload, err := cp.DecodePayload()
	if err != nil {
		return nil, err
	}

	if d.verifier != nil {
		if err = d.verifier.Verify(cp); err != nil {
			return nil, errors.Wrap(err, "verify")
		}
	}

	merged := make(map[string]interface{}, len(payload)+1)
	maps.Copy(merged, payload)
	merged[PresentedClaimsKey] = common.DisclosedClaims(claims)

	return &DecodedPresentation{Header: header, Payload: merged, Signature: cp.Signature}, nil
}
