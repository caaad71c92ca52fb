package domain

import "strings"

// ============================================================
// User profile
// ============================================================

// User is the profile returned by GET /user/profile and by login verification.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CPFCNPJ   string `json:"cpf_cnpj"`
	Address   string `json:"address"`
	Birthdate string `json:"birthdate"` // YYYY-MM-DD
	Avatar    string `json:"avatar,omitempty"`
}

// IsComplete reports whether every field required by profile completion is set.
func (u *User) IsComplete() bool {
	if u == nil {
		return false
	}
	for _, v := range []string{u.Name, u.Phone, u.CPFCNPJ, u.Address, u.Birthdate} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ProfileInput is the body for POST and PATCH /user/profile.
type ProfileInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CPFCNPJ   string `json:"cpf_cnpj"`
	Address   string `json:"address"`
	Birthdate string `json:"birthdate,omitempty"`
	Email     string `json:"email,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// ProfileForm holds profile fields as typed by the user. Birthdate is DD/MM/YYYY.
type ProfileForm struct {
	Name      string
	Phone     string
	CPFCNPJ   string
	Address   string
	Birthdate string
	Email     string
	Avatar    string
}

// Form returns the profile as an editable form, birthdate in DD/MM/YYYY.
func (u *User) Form() ProfileForm {
	if u == nil {
		return ProfileForm{}
	}
	return ProfileForm{
		Name:      u.Name,
		Phone:     u.Phone,
		CPFCNPJ:   u.CPFCNPJ,
		Address:   u.Address,
		Birthdate: DisplayOrRaw(u.Birthdate),
		Email:     u.Email,
		Avatar:    u.Avatar,
	}
}

// ToCompletionInput validates the completion form and converts it to the wire body.
func (f ProfileForm) ToCompletionInput() (*ProfileInput, error) {
	f = f.trimmed()
	if f.Name == "" || f.Phone == "" || f.CPFCNPJ == "" || f.Address == "" || f.Birthdate == "" {
		return nil, &ErrValidation{Field: "profile", Message: "Por favor, preencha todos os campos."}
	}
	birth, err := DisplayToISO(f.Birthdate)
	if err != nil {
		return nil, &ErrValidation{Field: "birthdate", Message: "Data de nascimento inválida. Use DD/MM/AAAA."}
	}
	return &ProfileInput{
		Name:      f.Name,
		Phone:     f.Phone,
		CPFCNPJ:   f.CPFCNPJ,
		Address:   f.Address,
		Birthdate: birth,
		Email:     f.Email,
		Avatar:    f.Avatar,
	}, nil
}

// ToEditInput validates the edit-profile form. Birthdate is optional here.
func (f ProfileForm) ToEditInput() (*ProfileInput, error) {
	f = f.trimmed()
	if f.Name == "" || f.CPFCNPJ == "" || f.Email == "" {
		return nil, &ErrValidation{Field: "profile", Message: "Nome, CPF/CNPJ e e-mail são obrigatórios."}
	}
	if err := ValidateEmail(f.Email); err != nil {
		return nil, err
	}
	in := &ProfileInput{
		Name:    f.Name,
		Phone:   f.Phone,
		CPFCNPJ: f.CPFCNPJ,
		Address: f.Address,
		Email:   f.Email,
		Avatar:  f.Avatar,
	}
	if f.Birthdate != "" {
		birth, err := DisplayToISO(f.Birthdate)
		if err != nil {
			return nil, &ErrValidation{Field: "birthdate", Message: "Data de nascimento inválida. Use DD/MM/AAAA."}
		}
		in.Birthdate = birth
	}
	return in, nil
}

func (f ProfileForm) trimmed() ProfileForm {
	return ProfileForm{
		Name:      strings.TrimSpace(f.Name),
		Phone:     strings.TrimSpace(f.Phone),
		CPFCNPJ:   strings.TrimSpace(f.CPFCNPJ),
		Address:   strings.TrimSpace(f.Address),
		Birthdate: strings.TrimSpace(f.Birthdate),
		Email:     strings.TrimSpace(f.Email),
		Avatar:    strings.TrimSpace(f.Avatar),
	}
}
