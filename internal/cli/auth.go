package cli

import (
	"context"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// ============================================================
// Auth screens
// ============================================================

func (a *App) register(ctx context.Context, _ []string) error {
	email, err := a.ask("E-mail")
	if err != nil {
		return err
	}
	password, err := a.askSecret("Senha")
	if err != nil {
		return err
	}
	confirm, err := a.askSecret("Confirme a senha")
	if err != nil {
		return err
	}

	res, err := a.svc.Auth.Register(ctx, email, password, confirm)
	if err != nil {
		return err
	}
	return a.follow(ctx, res)
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := a.ask("E-mail")
	if err != nil {
		return err
	}
	password, err := a.askSecret("Senha")
	if err != nil {
		return err
	}

	res, err := a.svc.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.follow(ctx, res)
}

func (a *App) forgot(ctx context.Context, args []string) error {
	email, err := a.argOrAsk(args, "E-mail da conta")
	if err != nil {
		return err
	}

	res, err := a.svc.Auth.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	return a.follow(ctx, res)
}

func (a *App) verify(ctx context.Context, args []string) error {
	code, err := a.argOrAsk(args, "Código de 6 dígitos")
	if err != nil {
		return err
	}

	res, err := a.svc.Auth.VerifyCode(ctx, code)
	if err != nil {
		return err
	}
	return a.follow(ctx, res)
}

func (a *App) resend(ctx context.Context, _ []string) error {
	res, err := a.svc.Auth.ResendCode(ctx)
	if err != nil {
		return err
	}
	return a.follow(ctx, res)
}

func (a *App) reset(ctx context.Context, _ []string) error {
	password, err := a.askSecret("Nova senha")
	if err != nil {
		return err
	}
	confirm, err := a.askSecret("Confirme a nova senha")
	if err != nil {
		return err
	}

	res, err := a.svc.Auth.ResetPassword(ctx, password, confirm)
	if err != nil {
		return err
	}
	return a.follow(ctx, res)
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.svc.Auth.Logout(ctx); err != nil {
		return err
	}
	a.forgetViews()
	a.say("Sessão encerrada.")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	st, err := a.svc.Auth.Status(ctx)
	if err != nil {
		return err
	}
	a.say(renderStatus(st))
	return nil
}

// follow prints the step message and continues where the app would
// navigate next.
func (a *App) follow(ctx context.Context, res *domain.AuthResult) error {
	if res.Message != "" {
		a.say(res.Message)
	}

	switch res.Next {
	case domain.NextVerifyCode:
		code, err := a.ask("Código de 6 dígitos (Enter para informar depois com 'verify')")
		if err != nil || code == "" {
			return err
		}
		next, err := a.svc.Auth.VerifyCode(ctx, code)
		if err != nil {
			return err
		}
		return a.follow(ctx, next)

	case domain.NextCompleteProfile:
		a.forgetViews()
		a.say("Complete seu cadastro para continuar.")
		return a.complete(ctx, nil)

	case domain.NextResetPassword:
		return a.reset(ctx, nil)

	case domain.NextHome:
		a.forgetViews()
		name := a.svc.Profile.DisplayName(ctx)
		if res.User != nil && res.User.Name != "" {
			name = res.User.Name
		}
		if name != "" {
			a.say("Olá, %s! Digite 'dashboard' para ver o resumo.", name)
		} else {
			a.say("Digite 'dashboard' para ver o resumo.")
		}

	case domain.NextLogin:
		a.say("Faça login com a nova senha.")
	}
	return nil
}

// forgetViews drops the cached profile and payer list so a new session
// never shows the previous account's data.
func (a *App) forgetViews() {
	a.svc.Profile.Forget()
	a.svc.Payers.Forget()
}
