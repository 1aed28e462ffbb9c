package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"travel-diary/internal/model"
	"travel-diary/internal/repository"
)

const resetClaim = "reset_password"

// AccountService owns registration, authentication, telegram linking
// and password management.
type AccountService struct {
	users  *repository.UserRepository
	secret []byte
}

func NewAccountService(users *repository.UserRepository, secret string) *AccountService {
	return &AccountService{users: users, secret: []byte(secret)}
}

// Register creates a new account with a hashed password. The telegram
// handle is optional; empty means not linked.
func (s *AccountService) Register(ctx context.Context, username, email, password, telegram string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	telegram = strings.TrimSpace(strings.TrimPrefix(telegram, "@"))

	if taken, err := s.identityTaken(ctx, username, email, telegram); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateIdentity
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		LastSeen:     time.Now().UTC(),
	}
	if telegram != "" {
		user.Telegram = &telegram
	}

	if err := s.users.Create(ctx, &user); err != nil {
		// The pre-check races with concurrent registrations; the unique
		// indexes are the source of truth.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return &user, nil
}

// VerifyCredentials distinguishes a missing account from a wrong
// password; handlers may present both as one message.
func (s *AccountService) VerifyCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LinkTelegram attaches a handle to an account that has none.
func (s *AccountService) LinkTelegram(ctx context.Context, user *model.User, handle string) error {
	handle = strings.TrimSpace(strings.TrimPrefix(handle, "@"))
	if user.Telegram != nil {
		return ErrAlreadyLinked
	}

	if err := s.users.SetTelegram(ctx, user, handle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrHandleTaken
		}
		return fmt.Errorf("link telegram: %w", err)
	}
	return nil
}

// ResetPassword unconditionally replaces the stored hash.
func (s *AccountService) ResetPassword(ctx context.Context, user *model.User, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, user, hash)
}

// UpdateProfile changes the username and bio. Username uniqueness is
// re-checked when it changes.
func (s *AccountService) UpdateProfile(ctx context.Context, user *model.User, username, aboutMe string) error {
	username = strings.TrimSpace(username)
	if err := s.users.UpdateProfile(ctx, user, username, aboutMe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *AccountService) TouchLastSeen(ctx context.Context, userID uint) error {
	return s.users.TouchLastSeen(ctx, userID, time.Now().UTC())
}

func (s *AccountService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *AccountService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *AccountService) FindByTelegram(ctx context.Context, handle string) (*model.User, error) {
	handle = strings.TrimSpace(strings.TrimPrefix(handle, "@"))
	if handle == "" {
		return nil, ErrNotFound
	}
	user, err := s.users.FindByTelegram(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ResetToken issues a signed, time-limited token carrying the user id.
func (s *AccountService) ResetToken(user *model.User, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		resetClaim: user.ID,
		"exp":      time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// VerifyResetToken resolves a token back to its user. Expired,
// tampered or malformed tokens all fail closed as ErrNotFound.
func (s *AccountService) VerifyResetToken(ctx context.Context, token string) (*model.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrNotFound
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNotFound
	}
	id, ok := claims[resetClaim].(float64)
	if !ok || id <= 0 {
		return nil, ErrNotFound
	}

	user, err := s.users.FindByID(ctx, uint(id))
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AccountService) identityTaken(ctx context.Context, username, email, telegram string) (bool, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check email: %w", err)
	}

	if telegram != "" {
		if _, err := s.users.FindByTelegram(ctx, telegram); err == nil {
			return true, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("check telegram: %w", err)
		}
	}
	return false, nil
}

// HashPassword wraps bcrypt with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plain password matches the hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
