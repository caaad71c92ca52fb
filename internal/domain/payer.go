package domain

import (
	"strings"
	"time"
)

// ============================================================
// Payers (Pagadores)
// ============================================================

// Payer is someone the account owner bills.
type Payer struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CPFCNPJ     string    `json:"cpf_cnpj,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Category    string    `json:"category,omitempty"`
	CEP         string    `json:"cep,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PayerInput is the body for POST and PATCH /payers.
type PayerInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CPFCNPJ     string `json:"cpf_cnpj,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Category    string `json:"category,omitempty"`
	CEP         string `json:"cep,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Normalize trims every field and strips masks from documents.
func (in *PayerInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.CPFCNPJ = OnlyDigits(in.CPFCNPJ)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Category = strings.TrimSpace(in.Category)
	in.CEP = OnlyDigits(in.CEP)
	in.Address = strings.TrimSpace(in.Address)
}

// Validate checks a normalized payer input.
func (in *PayerInput) Validate() error {
	if in.Name == "" {
		return &ErrValidation{Field: "name", Message: "Informe o nome do pagador."}
	}
	if in.Email != "" {
		if err := ValidateEmail(in.Email); err != nil {
			return err
		}
	}
	if in.CPFCNPJ != "" && len(in.CPFCNPJ) != 11 && len(in.CPFCNPJ) != 14 {
		return &ErrValidation{Field: "cpf_cnpj", Message: "CPF/CNPJ deve ter 11 ou 14 dígitos."}
	}
	if in.CEP != "" && len(in.CEP) != 8 {
		return &ErrValidation{Field: "cep", Message: "CEP deve ter 8 dígitos."}
	}
	return nil
}

// Matches reports whether query appears in the payer name or email, ignoring case.
func (p *Payer) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Email), q)
}

// FormatDocument renders 11 digits as a CPF and 14 digits as a CNPJ.
func FormatDocument(doc string) string {
	d := OnlyDigits(doc)
	switch len(d) {
	case 11:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	case 14:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
	}
	return doc
}
