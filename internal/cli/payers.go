package cli

import (
	"context"
	"strings"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// ============================================================
// Payer screens
// ============================================================

func (a *App) listPayers(ctx context.Context, args []string) error {
	payers, err := a.svc.Payers.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(payers) == 0 {
		a.say("Nenhum pagador encontrado.")
		return nil
	}
	a.say(renderPayers(payers))
	return nil
}

func (a *App) showPayer(ctx context.Context, args []string) error {
	id, err := parseID(args, "payer <id>")
	if err != nil {
		return err
	}
	p, err := a.svc.Payers.Get(ctx, id)
	if err != nil {
		return err
	}
	a.say(renderPayer(p))
	return nil
}

func (a *App) addPayer(ctx context.Context, _ []string) error {
	in, err := a.payerForm(domain.PayerInput{})
	if err != nil {
		return err
	}
	p, err := a.svc.Payers.Create(ctx, in)
	if err != nil {
		return err
	}
	a.say("Pagador #%d cadastrado com sucesso!", p.ID)
	return nil
}

func (a *App) editPayer(ctx context.Context, args []string) error {
	id, err := parseID(args, "editpayer <id>")
	if err != nil {
		return err
	}
	current, err := a.svc.Payers.Get(ctx, id)
	if err != nil {
		return err
	}

	in, err := a.payerForm(domain.PayerInput{
		Name:        current.Name,
		Description: current.Description,
		CPFCNPJ:     current.CPFCNPJ,
		Email:       current.Email,
		Phone:       current.Phone,
		Category:    current.Category,
		CEP:         current.CEP,
		Address:     current.Address,
	})
	if err != nil {
		return err
	}
	if _, err := a.svc.Payers.Update(ctx, id, in); err != nil {
		return err
	}
	a.say("Pagador atualizado com sucesso!")
	return nil
}

func (a *App) removePayer(ctx context.Context, args []string) error {
	id, err := parseID(args, "rmpayer <id>")
	if err != nil {
		return err
	}
	ok, err := a.confirm("Remover o pagador e todas as suas cobranças?")
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Payers.Delete(ctx, id); err != nil {
		return err
	}
	a.say("Pagador removido.")
	return nil
}

// payerForm prompts every payer field, offering the current values.
func (a *App) payerForm(in domain.PayerInput) (domain.PayerInput, error) {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Nome", &in.Name},
		{"Descrição", &in.Description},
		{"CPF/CNPJ", &in.CPFCNPJ},
		{"E-mail", &in.Email},
		{"Telefone", &in.Phone},
		{"Categoria", &in.Category},
		{"CEP", &in.CEP},
		{"Endereço", &in.Address},
	}
	for _, f := range fields {
		v, err := a.askDefault(f.prompt, *f.dst)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}
	return in, nil
}
