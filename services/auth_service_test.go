package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndAuthenticate(t *testing.T) {
	s := NewAuthService(testRepo(t))
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "john.doe", "passw0rd", "john@example.com", false)
	require.NoError(t, err)
	assert.NotEqual(t, "passw0rd", u.PasswordHash, "password must be hashed")
	assert.True(t, u.IsActive)

	got, err := s.Authenticate(ctx, "john.doe", "passw0rd")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	fresh, err := s.Repo.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.LastLogin)

	// 用户不存在和密码错误给同一个提示
	_, err = s.Authenticate(ctx, "john.doe", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	wrongPass := err.Error()

	_, err = s.Authenticate(ctx, "nobody", "passw0rd")
	require.Error(t, err)
	assert.Equal(t, wrongPass, err.Error())
}

func TestCreateUserRejectsDuplicatesAndBadInput(t *testing.T) {
	s := NewAuthService(testRepo(t))
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "john.doe", "passw0rd", "john@example.com", false)
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "john.doe", "passw0rd", "", false)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.CreateUser(ctx, "jane.roe", "passw0rd", "john@example.com", false)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.CreateUser(ctx, "jd", "passw0rd", "", false)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.CreateUser(ctx, "jane.roe", "nope", "", false)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.CreateUser(ctx, "jane.roe", "passw0rd", "not-an-email", false)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	s := NewAuthService(testRepo(t))
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "john.doe", "passw0rd", "", false)
	require.NoError(t, err)
	_, err = s.SetActive(ctx, u.ID, false)
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "john.doe", "passw0rd")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "account is disabled")
}

func TestChangePassword(t *testing.T) {
	s := NewAuthService(testRepo(t))
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "john.doe", "passw0rd", "", false)
	require.NoError(t, err)

	err = s.ChangePassword(ctx, u.ID, "wrong", "n3wpass")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = s.ChangePassword(ctx, u.ID, "passw0rd", "short")
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, s.ChangePassword(ctx, u.ID, "passw0rd", "n3wpass"))

	_, err = s.Authenticate(ctx, "john.doe", "passw0rd")
	require.Error(t, err)
	_, err = s.Authenticate(ctx, "john.doe", "n3wpass")
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	s := NewAuthService(testRepo(t))
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "john.doe", "passw0rd", "john@example.com", false)
	require.NoError(t, err)

	token, err := s.InitiateReset(ctx, "john.doe")
	require.NoError(t, err)
	assert.Len(t, token, 32)

	// 邮箱也能发起，且新 token 顶掉旧的
	token2, err := s.InitiateReset(ctx, "john@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)

	err = s.ResetWithToken(ctx, token, "n3wpass")
	assert.ErrorIs(t, err, ErrUnauthorized, "replaced token must not work")

	require.NoError(t, s.ResetWithToken(ctx, token2, "n3wpass"))

	// token 一次性：用过即作废
	err = s.ResetWithToken(ctx, token2, "an0ther")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.Authenticate(ctx, "john.doe", "n3wpass")
	require.NoError(t, err)
}

func TestResetTokenExpiry(t *testing.T) {
	repo := testRepo(t)
	s := NewAuthService(repo)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "john.doe", "passw0rd", "", false)
	require.NoError(t, err)

	token, err := s.InitiateReset(ctx, "john.doe")
	require.NoError(t, err)

	// 把过期时间拨回到昨天
	expired := time.Now().UTC().Add(-time.Hour)
	u, err = repo.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	u.ResetTokenExpiry = &expired
	require.NoError(t, repo.SaveUser(ctx, u))

	err = s.ResetWithToken(ctx, token, "n3wpass")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestInitiateResetUnknownOrDisabled(t *testing.T) {
	s := NewAuthService(testRepo(t))
	ctx := context.Background()

	_, err := s.InitiateReset(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	u, err := s.CreateUser(ctx, "john.doe", "passw0rd", "", false)
	require.NoError(t, err)
	_, err = s.SetActive(ctx, u.ID, false)
	require.NoError(t, err)

	_, err = s.InitiateReset(ctx, "john.doe")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	s := NewAuthService(testRepo(t))
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "john.doe", "passw0rd", "john@example.com", false)
	require.NoError(t, err)
	other, err := s.CreateUser(ctx, "jane.roe", "passw0rd", "jane@example.com", false)
	require.NoError(t, err)

	// 换成没人用的邮箱
	got, err := s.UpdateProfile(ctx, u.ID, "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, got.Email)
	assert.Equal(t, "new@example.com", *got.Email)

	// 撞到别人的邮箱
	_, err = s.UpdateProfile(ctx, u.ID, "jane@example.com")
	assert.ErrorIs(t, err, ErrConflict)

	// 自己的邮箱再提交一遍没问题
	_, err = s.UpdateProfile(ctx, other.ID, "jane@example.com")
	require.NoError(t, err)
}
