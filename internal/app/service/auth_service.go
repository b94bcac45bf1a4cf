package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"learndeck/internal/common"
	"learndeck/internal/common/security"
	"learndeck/internal/domain/repository"
	"learndeck/internal/platform/config"
)

// AuthService implements the platform's single-user login: one password,
// bcrypt-hashed in the settings table, exchanged for a JWT session token.
type AuthService struct {
	settingsRepo repository.SettingsRepository
}

func NewAuthService(settingsRepo repository.SettingsRepository) *AuthService {
	return &AuthService{settingsRepo: settingsRepo}
}

// Login verifies the password and returns a signed session token. If no hash
// has been stored yet, the configured default password is hashed and stored
// on first successful login.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", common.ErrValidation
	}

	hash, err := s.settingsRepo.Get(ctx, repository.SettingPasswordHash)
	if errors.Is(err, common.ErrNotFound) {
		if password != config.AppConfig.DefaultPassword {
			return "", common.ErrUnauthorized
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		if err := s.settingsRepo.Set(ctx, repository.SettingPasswordHash, string(hashed)); err != nil {
			return "", err
		}
		return security.GenerateToken()
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", common.ErrUnauthorized
	}
	return security.GenerateToken()
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, current, updated string) error {
	if current == "" || updated == "" {
		return common.ErrValidation
	}

	hash, err := s.settingsRepo.Get(ctx, repository.SettingPasswordHash)
	if errors.Is(err, common.ErrNotFound) {
		if current != config.AppConfig.DefaultPassword {
			return common.ErrUnauthorized
		}
	} else if err != nil {
		return err
	} else if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		return common.ErrUnauthorized
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.settingsRepo.Set(ctx, repository.SettingPasswordHash, string(hashed))
}
