package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a@x.com", "a@x.com"},
		{"  A@X.com ", "a@x.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in))
	}
}

func TestValidationError_AsAndUnwrap(t *testing.T) {
	base := errors.New("email: must be a valid email address.")
	err := fmt.Errorf("register: %w", NewValidationError(base))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, base.Error(), ve.Error())
	assert.ErrorIs(t, err, base)
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(ErrNotFound))
}

func TestNewValidationError_Nil(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))
}
