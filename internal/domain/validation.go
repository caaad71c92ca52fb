package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Inline validation (same rules and messages as the app screens)
// ============================================================

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

const (
	MinPasswordLength = 6
	CodeLength        = 6
)

// ValidateEmail rejects anything that is not shaped like user@host.tld.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &ErrValidation{Field: "email", Message: "Informe um e-mail válido."}
	}
	return nil
}

// ValidatePassword checks the minimum length.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &ErrValidation{Field: "password", Message: "A senha deve ter pelo menos 6 caracteres."}
	}
	return nil
}

// ValidateNewPassword checks length and confirmation.
func ValidateNewPassword(password, confirm string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return &ErrValidation{Field: "confirmpassword", Message: "As senhas não coincidem."}
	}
	return nil
}

// ValidateCode accepts exactly six ASCII digits.
func ValidateCode(code string) error {
	if len(code) != CodeLength || !isDigits(code) {
		return &ErrValidation{Field: "twoFactorCode", Message: "Por favor, digite um código válido de 6 dígitos."}
	}
	return nil
}

// OnlyDigits strips every non-digit rune, e.g. masks of CPF, CNPJ or CEP.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
