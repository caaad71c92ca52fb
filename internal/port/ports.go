// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the REST client and the local session storage.
package port

import (
	"context"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// AuthAPI covers the unauthenticated /user endpoints.
type AuthAPI interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	SendCode(ctx context.Context, req *domain.SendCodeRequest) (*domain.SendCodeResponse, error)
	VerifyCode(ctx context.Context, req *domain.VerifyCodeRequest) (*domain.VerifyCodeResponse, error)
	ResetPassword(ctx context.Context, resetToken string, req *domain.PasswordResetRequest) (*domain.MessageResponse, error)
}

// ProfileAPI covers /user/profile.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	CreateProfile(ctx context.Context, in *domain.ProfileInput) (*domain.User, error)
	UpdateProfile(ctx context.Context, in *domain.ProfileInput) (*domain.User, error)
}

// PayerAPI covers /payers.
type PayerAPI interface {
	ListPayers(ctx context.Context) ([]domain.Payer, error)
	GetPayer(ctx context.Context, id int64) (*domain.Payer, error)
	CreatePayer(ctx context.Context, in *domain.PayerInput) (*domain.Payer, error)
	UpdatePayer(ctx context.Context, id int64, in *domain.PayerInput) (*domain.Payer, error)
	DeletePayer(ctx context.Context, id int64) error
}

// ChargeAPI covers /payments. payerID 0 lists every charge.
type ChargeAPI interface {
	ListCharges(ctx context.Context, payerID int64) ([]domain.Charge, error)
	GetCharge(ctx context.Context, id int64) (*domain.Charge, error)
	CreateCharge(ctx context.Context, in *domain.ChargeInput) (*domain.Charge, error)
	UpdateCharge(ctx context.Context, id int64, in *domain.ChargeInput) (*domain.Charge, error)
	SetChargeStatus(ctx context.Context, id int64, status domain.ChargeStatus) (*domain.Charge, error)
	DeleteCharge(ctx context.Context, id int64) error
}

// NotificationAPI covers /notifications.
type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
}

// SessionStore is the local persistent key-value storage of the auth flow.
// Getters return zero values (no error) when nothing is stored.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	SaveLogin(ctx context.Context, token string, profileComplete bool, user *domain.User) error
	ProfileComplete(ctx context.Context) (bool, error)
	SetProfileComplete(ctx context.Context, complete bool) error
	User(ctx context.Context) (*domain.User, error)
	SaveUser(ctx context.Context, user *domain.User) error

	Pending(ctx context.Context) (*domain.PendingVerification, error)
	SavePending(ctx context.Context, p *domain.PendingVerification) error
	ClearPending(ctx context.Context) error

	ResetToken(ctx context.Context) (string, error)
	SaveResetToken(ctx context.Context, token string) error
	ClearResetToken(ctx context.Context) error

	Display(ctx context.Context) (name, avatar string, err error)
	SaveDisplay(ctx context.Context, name, avatar string) error

	ClearSession(ctx context.Context) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	DeletePrefix(prefix string)
	Clear()
}
