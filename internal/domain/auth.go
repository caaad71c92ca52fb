package domain

// ============================================================
// Auth: Request / Response types (BankUp REST contract)
// ============================================================

// VerificationType is the purpose of a one-time code.
type VerificationType string

const (
	VerificationAccount  VerificationType = "account_verification"
	VerificationLogin    VerificationType = "login_verification"
	VerificationPassword VerificationType = "password_reset"
)

// Valid reports whether t is one of the known code purposes.
func (t VerificationType) Valid() bool {
	switch t {
	case VerificationAccount, VerificationLogin, VerificationPassword:
		return true
	}
	return false
}

// NextStep tells the front-end where the flow goes after an auth operation.
type NextStep string

const (
	NextVerifyCode      NextStep = "verify_code"
	NextCompleteProfile NextStep = "complete_profile"
	NextHome            NextStep = "home"
	NextResetPassword   NextStep = "reset_password"
	NextLogin           NextStep = "login"
)

// RegisterRequest is the body for POST /user/register.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmpassword"`
}

// RegisterResponse is the body for 201 from POST /user/register.
type RegisterResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"msg"`
}

// LoginRequest is the body for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body for 200 from POST /user/login.
type LoginResponse struct {
	UserID  int64  `json:"userId"`
	Message string `json:"msg"`
}

// SendCodeRequest is the body for POST /user/send-code. UserID is omitted
// by the forgot-password screen, which only knows the email.
type SendCodeRequest struct {
	UserID int64            `json:"userId,omitempty"`
	Email  string           `json:"email"`
	Type   VerificationType `json:"type"`
}

// SendCodeResponse is the body for 200 from POST /user/send-code.
type SendCodeResponse struct {
	UserID  int64  `json:"userId"`
	Message string `json:"msg"`
}

// VerifyCodeRequest is the body for POST /user/verify-code.
type VerifyCodeRequest struct {
	UserID int64            `json:"userId"`
	Code   string           `json:"twoFactorCode"`
	Type   VerificationType `json:"type"`
}

// VerifyCodeResponse is the body for 200 from POST /user/verify-code.
// Login and account verification fill Token/ProfileComplete/User,
// password reset fills ResetToken.
type VerifyCodeResponse struct {
	Token           string `json:"token,omitempty"`
	ProfileComplete bool   `json:"profile_complete"`
	User            *User  `json:"user,omitempty"`
	ResetToken      string `json:"resetToken,omitempty"`
	Message         string `json:"msg,omitempty"`
}

// PasswordResetRequest is the body for POST /user/password-reset.
type PasswordResetRequest struct {
	NewPassword string `json:"newPassword"`
}

// MessageResponse is the generic `{msg}` body used for success and error.
type MessageResponse struct {
	Message string `json:"msg"`
}

// PendingVerification is what the code screen needs from the previous step.
type PendingVerification struct {
	UserID int64            `json:"userId"`
	Type   VerificationType `json:"type"`
	Email  string           `json:"email"`
}

// AuthResult is returned by every step of the auth flow.
type AuthResult struct {
	Next    NextStep
	Message string
	User    *User
}

// SessionStatus summarizes the locally persisted session.
type SessionStatus struct {
	LoggedIn        bool
	ProfileComplete bool
	DisplayName     string
	Pending         *PendingVerification
	HasResetToken   bool
}
