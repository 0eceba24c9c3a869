package password_test

import (
	"parking/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		cost     int
		wantErr  error
	}{
		{name: "valid password", password: "admin123", cost: bcrypt.MinCost},
		{name: "empty password", password: "", cost: bcrypt.MinCost, wantErr: password.ErrEmptyPassword},
		{name: "too long", password: strings.Repeat("a", password.MaxLength+1), cost: bcrypt.MinCost, wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.HashWithCost(tt.password, tt.cost)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestHash_InvalidCost(t *testing.T) {
	_, err := password.HashWithCost("secret", bcrypt.MaxCost+1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerify(t *testing.T) {
	hash, err := password.HashWithCost("admin123", bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name      string
		password  string
		hash      string
		wantErr   bool
		isInvalid bool
	}{
		{name: "match", password: "admin123", hash: hash},
		{name: "mismatch", password: "wrong", hash: hash, wantErr: true, isInvalid: true},
		{name: "empty password", password: "", hash: hash, wantErr: true, isInvalid: true},
		{name: "empty hash", password: "admin123", hash: "", wantErr: true, isInvalid: true},
		{name: "malformed hash", password: "admin123", hash: "not-a-hash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			if tt.isInvalid {
				assert.ErrorIs(t, err, password.ErrInvalidPassword)
			}
		})
	}
}
