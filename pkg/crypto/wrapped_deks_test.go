/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotLabel(t *testing.T) {
	require.Equal(t, "recipient_1", SlotLabel(0))
	require.Equal(t, "recipient_12", SlotLabel(11))

	i, ok := SlotIndex("recipient_3")
	require.True(t, ok)
	require.Equal(t, 2, i)

	for _, bad := range []string{"recipient_0", "recipient_x", "slot_1", ""} {
		_, ok = SlotIndex(bad)
		require.False(t, ok, bad)
	}
}

func TestWrappedDeksOrder(t *testing.T) {
	w := NewWrappedDeks()

	for _, i := range []int{0, 1, 9, 10, 2} {
		w.Set(SlotLabel(i), &WrappedDek{Ciphertext: strings.Repeat("a", i+1), Alg: X25519AESGCMAlg, Enc: AESGCMEnc})
	}

	require.Equal(t, 5, w.Len())
	require.Equal(t, []string{"recipient_1", "recipient_2", "recipient_10", "recipient_11", "recipient_3"}, w.Slots())

	raw, err := json.Marshal(w)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), `{"recipient_1":{"ciphertext":"a","iv":"","ephemeralPublickKey":"",`))
	require.Less(t, strings.Index(string(raw), "recipient_10"), strings.Index(string(raw), "recipient_3"))

	parsed := &WrappedDeks{}
	require.NoError(t, json.Unmarshal(raw, parsed))
	require.Equal(t, w.Slots(), parsed.Slots())

	d, ok := parsed.Get("recipient_11")
	require.True(t, ok)
	require.Equal(t, strings.Repeat("a", 11), d.Ciphertext)

	_, ok = parsed.Get("recipient_4")
	require.False(t, ok)
}

func TestWrappedDeksReplaceKeepsPosition(t *testing.T) {
	w := NewWrappedDeks()
	w.Set("recipient_1", &WrappedDek{IV: "one"})
	w.Set("recipient_2", &WrappedDek{IV: "two"})
	w.Set("recipient_1", &WrappedDek{IV: "uno"})

	require.Equal(t, []string{"recipient_1", "recipient_2"}, w.Slots())

	d, _ := w.Get("recipient_1")
	require.Equal(t, "uno", d.IV)
}

func TestWrappedDeksJSON(t *testing.T) {
	t.Run("success - empty object", func(t *testing.T) {
		raw, err := json.Marshal(NewWrappedDeks())
		require.NoError(t, err)
		require.Equal(t, "{}", string(raw))

		w := &WrappedDeks{}
		require.NoError(t, json.Unmarshal([]byte(" { } "), w))
		require.Zero(t, w.Len())
	})

	t.Run("success - wire field names", func(t *testing.T) {
		in := `{"recipient_2":{"ciphertext":"Y3Q","iv":"aXY","ephemeralPublickKey":"ab",` +
			`"recipient_pub_key":"cd","alg":"X25519-AES-GCM","enc":"AES-GCM"}}`

		w := &WrappedDeks{}
		require.NoError(t, json.Unmarshal([]byte(in), w))

		d, ok := w.Get("recipient_2")
		require.True(t, ok)
		require.Equal(t, "ab", d.EphemeralPublicKey)
		require.Equal(t, "cd", d.RecipientPubKey)
		require.Equal(t, X25519AESGCMAlg, d.Alg)
	})

	t.Run("error - not an object", func(t *testing.T) {
		w := &WrappedDeks{}
		require.Error(t, json.Unmarshal([]byte(`[1,2]`), w))
		require.Error(t, json.Unmarshal([]byte(`{"recipient_1":"x"}`), w))
	})

	t.Run("nil receiver accessors", func(t *testing.T) {
		var w *WrappedDeks

		require.Zero(t, w.Len())
		require.Nil(t, w.Slots())

		_, ok := w.Get("recipient_1")
		require.False(t, ok)
	})
}

func TestWrappedDeksNullJSON(t *testing.T) {
	var doc struct {
		Deks    WrappedDeks  `json:"deks"`
		DeksPtr *WrappedDeks `json:"deks_ptr"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"deks":null,"deks_ptr":null}`), &doc))
	require.Equal(t, 0, doc.Deks.Len())
	require.Nil(t, doc.DeksPtr)

	deks := NewWrappedDeks()
	deks.Set(SlotLabel(0), &WrappedDek{Ciphertext: "ct"})

	require.NoError(t, deks.UnmarshalJSON([]byte("null")))
	require.Equal(t, []string{"recipient_1"}, deks.Slots())
}
