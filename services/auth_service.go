package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"it_asset_manager/db"
	"it_asset_manager/models"
	"it_asset_manager/validate"
)

const (
	resetTokenLength = 32
	resetTokenTTL    = 24 * time.Hour
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type AuthService struct {
	Repo *db.Repo
}

func NewAuthService(repo *db.Repo) *AuthService { return &AuthService{Repo: repo} }

// Authenticate checks the password against the stored bcrypt hash. The same
// message covers unknown user and wrong password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled: %w", ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	}
	if err := s.Repo.TouchUserLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) CreateUser(ctx context.Context, username, password, email string, isAdmin bool) (*models.User, error) {
	if err := validate.Username(username); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if err := validate.Password(password); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if _, err := s.Repo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already exists: %w", ErrConflict)
	}

	user := &models.User{Username: username, IsAdmin: isAdmin, IsActive: true}
	if email != "" {
		if err := validate.Email(email); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
		}
		if _, err := s.Repo.FindUserByEmail(ctx, email); err == nil {
			return nil, fmt.Errorf("email already exists: %w", ErrConflict)
		}
		user.Email = &email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return fmt.Errorf("current password is incorrect: %w", ErrUnauthorized)
	}
	if err := validate.Password(newPassword); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.Repo.SaveUser(ctx, user)
}

// InitiateReset issues a fresh single-use reset token on the user row and
// returns it. Issuing again replaces the previous token.
func (s *AuthService) InitiateReset(ctx context.Context, usernameOrEmail string) (string, error) {
	user, err := s.Repo.FindUserByUsername(ctx, usernameOrEmail)
	if err != nil {
		user, err = s.Repo.FindUserByEmail(ctx, usernameOrEmail)
	}
	if err != nil {
		return "", fmt.Errorf("user not found: %w", ErrNotFound)
	}
	if !user.IsActive {
		return "", fmt.Errorf("account is disabled: %w", ErrUnauthorized)
	}

	token, err := randomToken(resetTokenLength)
	if err != nil {
		return "", err
	}
	expiry := time.Now().UTC().Add(resetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}

// ResetWithToken requires an exact, unexpired token and clears it after the
// password is set, so replaying the token fails.
func (s *AuthService) ResetWithToken(ctx context.Context, token, newPassword string) error {
	user, err := s.Repo.FindUserByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token: %w", ErrUnauthorized)
	}
	if !user.VerifyResetToken(token, time.Now().UTC()) {
		return fmt.Errorf("invalid or expired reset token: %w", ErrUnauthorized)
	}
	if err := validate.Password(newPassword); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ClearResetToken()
	return s.Repo.SaveUser(ctx, user)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, email string) (*models.User, error) {
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	if email != "" {
		if err := validate.Email(email); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
		}
		if existing, err := s.Repo.FindUserByEmail(ctx, email); err == nil && existing.ID != userID {
			return nil, fmt.Errorf("email already exists: %w", ErrConflict)
		}
		user.Email = &email
	}
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) SetActive(ctx context.Context, userID uint, active bool) (*models.User, error) {
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	user.IsActive = active
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
