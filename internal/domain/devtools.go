package domain

import "time"

// ============================================================
// Dev Tools: sandbox endpoints for development/testing
// ============================================================

// DevCodeResponse is returned by GET /dev/codes?email=.
type DevCodeResponse struct {
	Email     string           `json:"email"`
	UserID    int64            `json:"userId"`
	Code      string           `json:"code"`
	Type      VerificationType `json:"type"`
	ExpiresAt time.Time        `json:"expiresAt"`
}
