package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelink/internal/model"
)

func testUser() *model.User {
	return &model.User{ID: uuid.New(), Email: "a@b.com", Name: "Ada", Role: model.RoleTalent}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	user := testUser()

	token, tokenID, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)

	sess, err := claims.Session()
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, model.RoleTalent, sess.Role)
	assert.Equal(t, "a@b.com", sess.Email)
	assert.WithinDuration(t, time.Now().Add(AccessTokenExpiry), sess.ExpiresAt, 5*time.Second)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTService("one").GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = NewJWTService("two").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret")
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshAndReissue(t *testing.T) {
	svc := NewJWTService("test-secret")
	user := testUser()

	tokenID, refresh, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	got, err := svc.ExtractTokenID(refresh)
	require.NoError(t, err)
	assert.Equal(t, tokenID, got)

	claims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	access, err := svc.ReissueAccessToken(claims)
	require.NoError(t, err)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), accessClaims.UserID)
	assert.NotEqual(t, tokenID, accessClaims.ID)
}
