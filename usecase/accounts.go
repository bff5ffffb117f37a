package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"notebook/apperror"
	"notebook/model"
	"notebook/repository"
	"notebook/services"
	"notebook/utils"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is what registration, login and password changes hand back.
type AuthResult struct {
	Account *model.Account
	Token   string
}

type AccountService struct {
	Accounts AccountStore
	Tokens   *services.TokenManager
	Hasher   *services.PasswordHasher
	Versions TokenVersionCache // optional
	Logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, apperror.Validation("All fields are required")
	}

	if _, err := s.Accounts.FindByEmail(ctx, email); err == nil {
		utils.TrackAuthAttempt("failure", "register")
		return nil, apperror.New(apperror.KindDuplicateAccount, "User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Store(err)
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to hash password", err)
	}

	account := &model.Account{Name: name, Email: email, PasswordHash: hash}
	if err := s.Accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			utils.TrackAuthAttempt("failure", "register")
			return nil, apperror.New(apperror.KindDuplicateAccount, "User already exists")
		}
		return nil, apperror.Store(err)
	}

	token, err := s.issue(account)
	if err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "register")
	s.logger().InfoContext(ctx, "account registered", "account_id", account.ID)
	return &AuthResult{Account: account, Token: token}, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Validation("All fields are required")
	}

	account, err := s.Accounts.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Store(err)
		}
		// keep the miss as slow as a wrong password
		s.Hasher.Verify(password, s.dummy())
		utils.TrackAuthAttempt("failure", "login")
		return nil, apperror.ErrInvalidCredentials
	}

	if !s.Hasher.Verify(password, account.PasswordHash) {
		utils.TrackAuthAttempt("failure", "login")
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.issue(account)
	if err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "login")
	return &AuthResult{Account: account, Token: token}, nil
}

// Authenticate resolves a bearer token to an account id. Tokens minted before
// the account's last password change are rejected.
func (s *AccountService) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		utils.TrackAuthAttempt("failure", "token")
		return "", err
	}

	version, err := s.currentTokenVersion(ctx, claims.UserID)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			utils.TrackAuthAttempt("failure", "token")
			return "", apperror.InvalidToken(err)
		}
		return "", err
	}
	if version != claims.TokenVersion {
		utils.TrackAuthAttempt("failure", "token")
		return "", apperror.InvalidToken(errors.New("token version revoked"))
	}

	return claims.UserID, nil
}

func (s *AccountService) currentTokenVersion(ctx context.Context, accountID string) (int, error) {
	if s.Versions != nil {
		version, found, err := s.Versions.Get(ctx, accountID)
		if err != nil {
			s.logger().WarnContext(ctx, "token version cache read failed", "error", err)
		} else if found {
			return version, nil
		}
	}

	account, err := s.Accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperror.NotFound("Account not found")
		}
		return 0, apperror.Store(err)
	}

	if s.Versions != nil {
		if err := s.Versions.Set(ctx, accountID, account.TokenVersion); err != nil {
			s.logger().WarnContext(ctx, "token version cache write failed", "error", err)
		}
	}
	return account.TokenVersion, nil
}

func (s *AccountService) Profile(ctx context.Context, accountID string) (*model.Account, error) {
	if accountID == "" {
		return nil, apperror.ErrUnauthorized
	}
	account, err := s.Accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Store(err)
	}
	return account, nil
}

// UpdatePassword replaces the password after checking the current one. Every
// token issued before the change stops working; the result carries a fresh
// one.
func (s *AccountService) UpdatePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*AuthResult, error) {
	if oldPassword == "" || newPassword == "" {
		return nil, apperror.Validation("Old and new password are required")
	}

	account, err := s.Profile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !s.Hasher.Verify(oldPassword, account.PasswordHash) {
		utils.TrackAuthAttempt("failure", "password")
		return nil, apperror.New(apperror.KindInvalidCredentials, "Current password is incorrect")
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to hash password", err)
	}

	updated, err := s.Accounts.UpdatePassword(ctx, accountID, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Store(err)
	}

	if s.Versions != nil {
		if err := s.Versions.Invalidate(ctx, accountID); err != nil {
			s.logger().WarnContext(ctx, "token version cache invalidation failed", "error", err)
		}
	}

	token, err := s.issue(updated)
	if err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "password")
	s.logger().InfoContext(ctx, "password updated", "account_id", accountID)
	return &AuthResult{Account: updated, Token: token}, nil
}

func (s *AccountService) issue(account *model.Account) (string, error) {
	token, _, err := s.Tokens.Issue(account.ID, account.TokenVersion)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, "failed to generate token", err)
	}
	return token, nil
}

func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash(utils.NewID())
	})
	return s.dummyHash
}
