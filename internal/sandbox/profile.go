package sandbox

import (
	"context"
	"strings"

	"github.com/boddenberg/bankup-app-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Profile: /user/profile
// ============================================================

func (s *Sandbox) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	_, span := tracer.Start(ctx, "Sandbox.Profile")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	acc := s.accounts[userID]
	if acc == nil {
		return nil, &domain.ErrNotFound{Resource: "Perfil", ID: "me"}
	}
	u := acc.profile
	return &u, nil
}

// CompleteProfile handles POST /user/profile. Every completion field is required.
func (s *Sandbox) CompleteProfile(ctx context.Context, userID int64, in *domain.ProfileInput) (*domain.User, error) {
	_, span := tracer.Start(ctx, "Sandbox.CompleteProfile")
	defer span.End()

	in = trimProfile(in)
	if in.Name == "" || in.Phone == "" || in.CPFCNPJ == "" || in.Address == "" || in.Birthdate == "" {
		return nil, &domain.ErrValidation{Field: "profile", Message: "Por favor, preencha todos os campos."}
	}
	if _, err := domain.ParseISODate(in.Birthdate); err != nil {
		return nil, &domain.ErrValidation{Field: "birthdate", Message: "Data de nascimento inválida."}
	}
	return s.applyProfile(userID, in)
}

// UpdateProfile handles PATCH /user/profile.
func (s *Sandbox) UpdateProfile(ctx context.Context, userID int64, in *domain.ProfileInput) (*domain.User, error) {
	_, span := tracer.Start(ctx, "Sandbox.UpdateProfile")
	defer span.End()

	in = trimProfile(in)
	if in.Name == "" || in.CPFCNPJ == "" {
		return nil, &domain.ErrValidation{Field: "profile", Message: "Preencha os campos obrigatórios (nome e CPF)."}
	}
	if in.Birthdate != "" {
		if _, err := domain.ParseISODate(in.Birthdate); err != nil {
			return nil, &domain.ErrValidation{Field: "birthdate", Message: "Data de nascimento inválida."}
		}
	}
	if in.Email != "" {
		if err := domain.ValidateEmail(in.Email); err != nil {
			return nil, err
		}
	}
	return s.applyProfile(userID, in)
}

func (s *Sandbox) applyProfile(userID int64, in *domain.ProfileInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.accounts[userID]
	if acc == nil {
		return nil, &domain.ErrNotFound{Resource: "Perfil", ID: "me"}
	}

	email := normalizeEmail(in.Email)
	if email != "" && email != acc.profile.Email {
		if _, taken := s.byEmail[email]; taken {
			return nil, &domain.ErrConflict{Message: "E-mail já cadastrado."}
		}
		delete(s.byEmail, acc.profile.Email)
		s.byEmail[email] = acc.id
		acc.profile.Email = email
	}

	acc.profile.Name = in.Name
	acc.profile.Phone = in.Phone
	acc.profile.CPFCNPJ = domain.OnlyDigits(in.CPFCNPJ)
	acc.profile.Address = in.Address
	if in.Birthdate != "" {
		birth, _ := domain.ParseISODate(in.Birthdate)
		acc.profile.Birthdate = birth.Format(domain.ISODateLayout)
	}
	if in.Avatar != "" {
		acc.profile.Avatar = in.Avatar
	}

	s.logger.Info("sandbox: profile saved", zap.Int64("user_id", acc.id))
	u := acc.profile
	return &u, nil
}

func trimProfile(in *domain.ProfileInput) *domain.ProfileInput {
	return &domain.ProfileInput{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		CPFCNPJ:   strings.TrimSpace(in.CPFCNPJ),
		Address:   strings.TrimSpace(in.Address),
		Birthdate: strings.TrimSpace(in.Birthdate),
		Email:     strings.TrimSpace(in.Email),
		Avatar:    strings.TrimSpace(in.Avatar),
	}
}
