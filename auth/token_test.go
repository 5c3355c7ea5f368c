package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", SessionTTL)
	id := primitive.NewObjectID()

	token, err := m.Issue(id)
	require.NoError(t, err)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", SessionTTL).Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = NewTokenManager("other", SessionTTL).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", SessionTTL)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(SessionTTL + time.Minute) }
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", SessionTTL).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
