package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	token, exp, err := Generate("secret", "addr-1", time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := Verify(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "addr-1", claims.Subject)
	assert.Equal(t, "addr-1", claims.Address)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, _, err := Generate("secret", "addr-1", time.Minute)
	require.NoError(t, err)

	_, err = Verify(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	token, _, err := Generate("secret", "addr-1", -time.Minute)
	require.NoError(t, err)

	_, err = Verify(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := Verify("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, _, err := Generate("", "addr-1", time.Minute)
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, err := BearerToken(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
