/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SlotPrefix prefixes the positional slot labels of WrappedDeks.
const SlotPrefix = "recipient_"

// SlotLabel returns the positional label of the recipient at zero based index i.
func SlotLabel(i int) string {
	return SlotPrefix + strconv.Itoa(i+1)
}

// SlotIndex returns the zero based recipient index encoded in a positional label.
func SlotIndex(label string) (int, bool) {
	if !strings.HasPrefix(label, SlotPrefix) {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimPrefix(label, SlotPrefix))
	if err != nil || n < 1 {
		return 0, false
	}

	return n - 1, true
}

// WrappedDeks maps slot labels to wrapped content keys. Insertion order is kept and
// is the order of the JSON object members.
type WrappedDeks struct {
	slots []string
	deks  map[string]*WrappedDek
}

// NewWrappedDeks returns an empty WrappedDeks.
func NewWrappedDeks() *WrappedDeks {
	return &WrappedDeks{deks: map[string]*WrappedDek{}}
}

// Set stores dek under slot. Replacing an existing slot keeps its position.
func (w *WrappedDeks) Set(slot string, dek *WrappedDek) {
	if w.deks == nil {
		w.deks = map[string]*WrappedDek{}
	}

	if _, ok := w.deks[slot]; !ok {
		w.slots = append(w.slots, slot)
	}

	w.deks[slot] = dek
}

// Get returns the wrapped key stored under slot.
func (w *WrappedDeks) Get(slot string) (*WrappedDek, bool) {
	if w == nil {
		return nil, false
	}

	d, ok := w.deks[slot]

	return d, ok
}

// Slots returns the slot labels in order.
func (w *WrappedDeks) Slots() []string {
	if w == nil {
		return nil
	}

	return append([]string(nil), w.slots...)
}

// Len returns the number of slots.
func (w *WrappedDeks) Len() int {
	if w == nil {
		return 0
	}

	return len(w.slots)
}

// MarshalJSON writes the slots as a JSON object in insertion order.
func (w *WrappedDeks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, slot := range w.Slots() {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(slot)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(w.deks[slot])
		if err != nil {
			return nil, fmt.Errorf("marshal slot %s: %w", slot, err)
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of wrapped keys keeping the member order.
func (w *WrappedDeks) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	// null leaves the value untouched, as encoding/json does.
	if tok == nil {
		return nil
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("wrapped deks: expected JSON object")
	}

	*w = WrappedDeks{deks: map[string]*WrappedDek{}}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}

		slot, ok := tok.(string)
		if !ok {
			return errors.New("wrapped deks: expected object key")
		}

		dek := &WrappedDek{}

		if err = dec.Decode(dek); err != nil {
			return fmt.Errorf("wrapped deks: slot %s: %w", slot, err)
		}

		w.Set(slot, dek)
	}

	_, err = dec.Token()

	return err
}
