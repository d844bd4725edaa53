package crypto

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeychain_GenerateSalt(t *testing.T) {
	k := NewKeychain()

	s1, err := k.GenerateSalt()
	require.NoError(t, err)
	s2, err := k.GenerateSalt()
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)

	raw, err := base64.StdEncoding.DecodeString(s1)
	require.NoError(t, err)
	assert.Len(t, raw, 16)
}

func TestKeychain_DeriveKey_Deterministic(t *testing.T) {
	k := NewKeychain()
	salt, err := k.GenerateSalt()
	require.NoError(t, err)

	key1, err := k.DeriveKey("correct horse battery staple", salt)
	require.NoError(t, err)
	key2, err := k.DeriveKey("correct horse battery staple", salt)
	require.NoError(t, err)

	// Same passphrase + same salt must re-derive the same key on any device.
	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 32)

	other, err := k.DeriveKey("wrong passphrase", salt)
	require.NoError(t, err)
	assert.NotEqual(t, key1, other)
}

func TestKeychain_DeriveKey_BadSalt(t *testing.T) {
	k := NewKeychain()

	_, err := k.DeriveKey("pass", "%%%not-base64%%%")
	require.Error(t, err)

	_, err = k.DeriveKey("pass", "")
	require.Error(t, err)
}

func TestKeychain_KeyLifecycle(t *testing.T) {
	k := NewKeychain()

	assert.False(t, k.HasKey())
	_, err := k.Key()
	assert.ErrorIs(t, err, ErrKeyUnavailable)

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	k.SetKey(key)

	assert.True(t, k.HasKey())
	got, err := k.Key()
	require.NoError(t, err)
	assert.Equal(t, key, got)

	// Returned key is a copy: mutating it must not affect the keychain.
	got[0] = 0xFF
	again, err := k.Key()
	require.NoError(t, err)
	assert.Equal(t, byte(0), again[0])

	k.Clear()
	assert.False(t, k.HasKey())
	_, err = k.Key()
	assert.ErrorIs(t, err, ErrKeyUnavailable)
}

func TestKeychain_Subscribe_FiresOnSetKey(t *testing.T) {
	k := NewKeychain()
	ch := k.Subscribe()

	select {
	case <-ch:
		t.Fatal("subscription fired before any key was set")
	default:
	}

	k.SetKey([]byte("0123456789abcdef0123456789abcdef"))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("subscription did not fire on SetKey")
	}
}

func TestKeychain_Subscribe_CoalescesSignals(t *testing.T) {
	k := NewKeychain()
	ch := k.Subscribe()

	// Two SetKey calls with no consumer in between must not block.
	k.SetKey([]byte("0123456789abcdef0123456789abcdef"))
	k.SetKey([]byte("fedcba9876543210fedcba9876543210"))

	<-ch
	select {
	case <-ch:
		t.Fatal("expected coalesced signal, got a second one")
	default:
	}
}

func TestKeychain_ReconcileSalt(t *testing.T) {
	k := NewKeychain()

	tests := []struct {
		name    string
		local   string
		session string
		want    string
		wantErr error
	}{
		{name: "both empty", local: "", session: "", want: ""},
		{name: "local missing adopts session", local: "", session: "S1", want: "S1"},
		{name: "session missing keeps local", local: "S1", session: "", want: "S1"},
		{name: "agreement", local: "S1", session: "S1", want: "S1"},
		{name: "conflict is fatal", local: "S1", session: "S2", wantErr: ErrSaltConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.ReconcileSalt(tt.local, tt.session)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
