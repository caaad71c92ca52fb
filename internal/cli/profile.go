package cli

import (
	"context"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// ============================================================
// Profile screens
// ============================================================

func (a *App) showProfile(ctx context.Context, _ []string) error {
	u, err := a.svc.Profile.Get(ctx)
	if err != nil {
		return err
	}
	a.say(renderProfile(u))
	return nil
}

func (a *App) complete(ctx context.Context, _ []string) error {
	var form domain.ProfileForm
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Nome completo", &form.Name},
		{"Telefone", &form.Phone},
		{"CPF/CNPJ", &form.CPFCNPJ},
		{"Endereço", &form.Address},
		{"Data de nascimento (DD/MM/AAAA)", &form.Birthdate},
	}
	for _, f := range fields {
		v, err := a.ask(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	u, err := a.svc.Profile.Complete(ctx, form)
	if err != nil {
		return err
	}
	a.say("Cadastro adicional concluído.")
	a.say("Olá, %s! Digite 'dashboard' para ver o resumo.", u.Name)
	return nil
}

func (a *App) editProfile(ctx context.Context, _ []string) error {
	current, err := a.svc.Profile.Get(ctx)
	if err != nil {
		return err
	}

	form := current.Form()
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Nome", &form.Name},
		{"E-mail", &form.Email},
		{"Telefone", &form.Phone},
		{"CPF/CNPJ", &form.CPFCNPJ},
		{"Endereço", &form.Address},
		{"Data de nascimento (DD/MM/AAAA)", &form.Birthdate},
		{"Avatar (URL)", &form.Avatar},
	}
	for _, f := range fields {
		v, err := a.askDefault(f.prompt, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if _, err := a.svc.Profile.Update(ctx, form); err != nil {
		return err
	}
	a.say("Perfil atualizado com sucesso!")
	return nil
}
