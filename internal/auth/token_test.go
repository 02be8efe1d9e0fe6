package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	userID := uuid.New()

	token, err := m.Issue(userID)
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenManager_Parse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	userID := uuid.New()
	valid, err := m.Issue(userID)
	require.NoError(t, err)

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(userID)
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("other", time.Hour).Issue(userID)
	require.NoError(t, err)

	noClaim, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"성공: 유효한 토큰", valid, nil},
		{"실패: 만료된 토큰", expiredToken, ErrInvalidToken},
		{"실패: 다른 secret", otherSecret, ErrInvalidToken},
		{"실패: 형식 오류", "not-a-token", ErrInvalidToken},
		{"실패: user_id 없음", noClaim, ErrMissingClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Parse(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, uuid.Nil, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, got)
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, ComparePassword(hash, "s3cret!"))
	assert.False(t, ComparePassword(hash, "wrong"))
	assert.False(t, ComparePassword("", "s3cret!"))
}
