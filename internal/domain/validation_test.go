package domain_test

import (
	"errors"
	"testing"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"ana@empresa.com.br", "a@b.co", " joao@x.io "}
	invalid := []string{"", "ana", "ana@empresa", "@.", "ana.empresa.com"}

	for _, e := range valid {
		if err := domain.ValidateEmail(e); err != nil {
			t.Errorf("expected %q to be valid, got %v", e, err)
		}
	}
	for _, e := range invalid {
		err := domain.ValidateEmail(e)
		if err == nil {
			t.Errorf("expected %q to be rejected", e)
			continue
		}
		if err.Error() != "Informe um e-mail válido." {
			t.Errorf("unexpected message: %s", err.Error())
		}
	}
}

func TestValidateNewPassword(t *testing.T) {
	err := domain.ValidateNewPassword("12345", "12345")
	var v *domain.ErrValidation
	if !errors.As(err, &v) || v.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
	if err.Error() != "A senha deve ter pelo menos 6 caracteres." {
		t.Errorf("unexpected message: %s", err.Error())
	}

	err = domain.ValidateNewPassword("segredo1", "segredo2")
	if err == nil || err.Error() != "As senhas não coincidem." {
		t.Errorf("expected mismatch error, got %v", err)
	}

	if err := domain.ValidateNewPassword("segredo", "segredo"); err != nil {
		t.Errorf("expected valid password, got %v", err)
	}
}

func TestValidateCode(t *testing.T) {
	for _, c := range []string{"123456", "000000"} {
		if err := domain.ValidateCode(c); err != nil {
			t.Errorf("expected %q to be valid, got %v", c, err)
		}
	}
	for _, c := range []string{"", "12345", "1234567", "12a456", "１２３４５６"} {
		err := domain.ValidateCode(c)
		if err == nil {
			t.Errorf("expected %q to be rejected", c)
			continue
		}
		if err.Error() != "Por favor, digite um código válido de 6 dígitos." {
			t.Errorf("unexpected message: %s", err.Error())
		}
	}
}

func TestProfileForm_ToCompletionInput(t *testing.T) {
	form := domain.ProfileForm{
		Name:      " Maria Souza ",
		Phone:     "11999990000",
		CPFCNPJ:   "12345678901",
		Address:   "Rua A, 10",
		Birthdate: "17/05/1990",
	}

	in, err := form.ToCompletionInput()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if in.Birthdate != "1990-05-17" {
		t.Errorf("expected ISO birthdate, got '%s'", in.Birthdate)
	}
	if in.Name != "Maria Souza" {
		t.Errorf("expected trimmed name, got '%s'", in.Name)
	}

	form.Address = ""
	if _, err := form.ToCompletionInput(); err == nil || err.Error() != "Por favor, preencha todos os campos." {
		t.Errorf("expected missing-field error, got %v", err)
	}

	form.Address = "Rua A, 10"
	form.Birthdate = "1990-05-17"
	if _, err := form.ToCompletionInput(); err == nil {
		t.Error("expected invalid birthdate error")
	}
}

func TestProfileForm_ToEditInput(t *testing.T) {
	form := domain.ProfileForm{Name: "Maria", CPFCNPJ: "12345678901", Email: "maria@x.com"}
	in, err := form.ToEditInput()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if in.Birthdate != "" {
		t.Errorf("expected empty birthdate, got '%s'", in.Birthdate)
	}

	form.Email = ""
	if _, err := form.ToEditInput(); err == nil {
		t.Error("expected error when email is missing")
	}
}

func TestUser_IsComplete(t *testing.T) {
	var nilUser *domain.User
	if nilUser.IsComplete() {
		t.Error("nil user must not be complete")
	}

	u := &domain.User{Name: "A", Phone: "1", CPFCNPJ: "2", Address: "3", Birthdate: "2000-01-01"}
	if !u.IsComplete() {
		t.Error("expected complete user")
	}
	u.Phone = " "
	if u.IsComplete() {
		t.Error("blank phone must make the profile incomplete")
	}
}

func TestPayerInput_Validate(t *testing.T) {
	in := &domain.PayerInput{Name: "Loja X", CPFCNPJ: "12.345.678/0001-90", CEP: "01310-100", Email: "loja@x.com"}
	in.Normalize()
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid payer, got %v", err)
	}
	if in.CPFCNPJ != "12345678000190" || in.CEP != "01310100" {
		t.Errorf("expected digits only, got cpf_cnpj=%s cep=%s", in.CPFCNPJ, in.CEP)
	}

	bad := &domain.PayerInput{Name: "Loja X", CPFCNPJ: "123"}
	bad.Normalize()
	if err := bad.Validate(); err == nil {
		t.Error("expected invalid document error")
	}

	noName := &domain.PayerInput{}
	if err := noName.Validate(); err == nil {
		t.Error("expected missing name error")
	}
}

func TestFormatDocument(t *testing.T) {
	if got := domain.FormatDocument("12345678901"); got != "123.456.789-01" {
		t.Errorf("unexpected CPF format: %s", got)
	}
	if got := domain.FormatDocument("12345678000190"); got != "12.345.678/0001-90" {
		t.Errorf("unexpected CNPJ format: %s", got)
	}
}
