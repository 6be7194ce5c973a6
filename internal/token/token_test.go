package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletapi/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: 42, Email: "a@x.com", IsActive: true}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret-key-for-signing", 30*time.Minute, 24*time.Hour)

	tests := []struct {
		name       string
		issueKind  string
		verifyKind string
		expectErr  error
	}{
		{
			name:       "access token verifies as access",
			issueKind:  KindAccess,
			verifyKind: KindAccess,
		},
		{
			name:       "refresh token verifies as refresh",
			issueKind:  KindRefresh,
			verifyKind: KindRefresh,
		},
		{
			name:       "access token rejected where refresh expected",
			issueKind:  KindAccess,
			verifyKind: KindRefresh,
			expectErr:  ErrWrongKind,
		},
		{
			name:       "refresh token rejected where access expected",
			issueKind:  KindRefresh,
			verifyKind: KindAccess,
			expectErr:  ErrWrongKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenStr, err := svc.Issue(testUser(), tt.issueKind)
			require.NoError(t, err)
			require.NotEmpty(t, tokenStr)

			claims, err := svc.Verify(tokenStr, tt.verifyKind)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(42), claims.UserID)
				assert.Equal(t, tt.issueKind, claims.TokenType)
			}
		})
	}
}

func TestIssue_AccessCarriesEmailRefreshDoesNot(t *testing.T) {
	svc := NewService("test-secret-key-for-signing", 30*time.Minute, 24*time.Hour)

	access, err := svc.Issue(testUser(), KindAccess)
	require.NoError(t, err)
	claims, err := svc.Verify(access, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)

	refresh, err := svc.Issue(testUser(), KindRefresh)
	require.NoError(t, err)
	claims, err = svc.Verify(refresh, KindRefresh)
	require.NoError(t, err)
	assert.Empty(t, claims.Email)
}

func TestVerify_Rejections(t *testing.T) {
	svc := NewService("test-secret-key-for-signing", 30*time.Minute, 24*time.Hour)
	valid, err := svc.Issue(testUser(), KindAccess)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		verifier *Service
	}{
		{
			name:     "wrong secret",
			token:    valid,
			verifier: NewService("a-different-secret", 30*time.Minute, 24*time.Hour),
		},
		{
			name:     "malformed token",
			token:    "invalid.token.string",
			verifier: svc,
		},
		{
			name:     "empty token",
			token:    "",
			verifier: svc,
		},
		{
			name: "expired token",
			token: func() string {
				expired := NewService("test-secret-key-for-signing", -time.Minute, 24*time.Hour)
				tok, err := expired.Issue(testUser(), KindAccess)
				require.NoError(t, err)
				return tok
			}(),
			verifier: svc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.verifier.Verify(tt.token, KindAccess)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestIssuePair(t *testing.T) {
	svc := NewService("test-secret-key-for-signing", 30*time.Minute, 24*time.Hour)

	access, refresh, err := svc.IssuePair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	_, err = svc.Verify(access, KindAccess)
	assert.NoError(t, err)
	_, err = svc.Verify(refresh, KindRefresh)
	assert.NoError(t, err)
}
