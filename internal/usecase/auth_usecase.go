package usecase

import (
	"context"
	"errors"
	"time"

	"facility-registry/internal/pkg/jwt"
	ucauth "facility-registry/internal/usecase/auth"

	"go.uber.org/zap"
)

type AdminSession struct {
	Username    string
	AccessToken string
	ExpiresAt   time.Time
}

type AuthUsecase interface {
	Login(ctx context.Context, in ucauth.LoginInput) (AdminSession, error)
}

type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
	logger  *zap.Logger
}

func NewAuthUsecase(authSvc *ucauth.Service, jwtSvc jwt.Service, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{authSvc: authSvc, jwt: jwtSvc, logger: logger.Named("auth")}
}

func (u *Auth) Login(_ context.Context, in ucauth.LoginInput) (AdminSession, error) {
	username, err := u.authSvc.Verify(in)
	if err != nil {
		if errors.Is(err, ucauth.ErrNotConfigured) {
			u.logger.Warn("admin login attempted without configured credentials")
		}
		return AdminSession{}, ErrUnauthorized
	}
	if u.jwt == nil {
		return AdminSession{}, ErrInternal
	}

	token, exp, err := u.jwt.GenerateAdminToken(username)
	if err != nil {
		return AdminSession{}, errors.Join(ErrInternal, err)
	}

	u.logger.Info("admin login", zap.String("username", username))
	return AdminSession{Username: username, AccessToken: token, ExpiresAt: exp}, nil
}
