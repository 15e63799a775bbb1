package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin credentials not configured")
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service checks logins against the single configured admin account.
type Service struct {
	username     string
	passwordHash []byte
}

func NewService(username, passwordHash string) *Service {
	return &Service{
		username:     strings.TrimSpace(username),
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
	}
}

func (s *Service) Configured() bool {
	return s != nil && s.username != "" && len(s.passwordHash) > 0
}

// Verify returns the canonical username on success.
func (s *Service) Verify(in LoginInput) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return "", ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(username)), []byte(strings.ToLower(s.username))) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(in.Password))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}
	return s.username, nil
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
