package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONNeverContainsPassword(t *testing.T) {
	u := NewUser("Alice", "a@b.com", "$2a$10$hash", "+15551234567").WithID("65f1c2a9e4b0a1b2c3d4e5f6")

	for name, v := range map[string]any{"user": u, "public": u.Public()} {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(v)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(raw, &got))

			assert.NotContains(t, got, "password")
			assert.NotContains(t, got, "PasswordHash")
			assert.NotContains(t, string(raw), "$2a$10$hash")
			assert.Equal(t, "65f1c2a9e4b0a1b2c3d4e5f6", got["id"])
			assert.Equal(t, "a@b.com", got["email"])
		})
	}
}

func TestUser_WithIDReturnsCopy(t *testing.T) {
	u := NewUser("Alice", "a@b.com", "hash", "+15551234567")
	saved := u.WithID("65f1c2a9e4b0a1b2c3d4e5f6")

	assert.Empty(t, u.ID)
	assert.Equal(t, "65f1c2a9e4b0a1b2c3d4e5f6", saved.ID)
	assert.Equal(t, u.Email, saved.Email)
}

func TestPublicUsers_EmptyIsNotNil(t *testing.T) {
	out := PublicUsers(nil)
	require.NotNil(t, out)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
