package cli

import (
	"context"
	"strconv"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// ============================================================
// Charge screens
// ============================================================

func (a *App) listCharges(ctx context.Context, _ []string) error {
	charges, err := a.svc.Charges.List(ctx)
	if err != nil {
		return err
	}
	if len(charges) == 0 {
		a.say("Nenhuma cobrança cadastrada.")
		return nil
	}
	a.say(renderCharges(charges))
	return nil
}

func (a *App) showCharge(ctx context.Context, args []string) error {
	id, err := parseID(args, "charge <id>")
	if err != nil {
		return err
	}
	c, err := a.svc.Charges.Get(ctx, id)
	if err != nil {
		return err
	}
	a.say(renderCharge(c, a.now()))
	return nil
}

func (a *App) addCharge(ctx context.Context, args []string) error {
	form := domain.ChargeForm{InterestRate: "0%", NotifyDaysBefore: "3"}
	if len(args) > 0 {
		form.PayerID = args[0]
	}
	form, err := a.chargeForm(form)
	if err != nil {
		return err
	}
	c, err := a.svc.Charges.Create(ctx, form)
	if err != nil {
		return err
	}
	a.say("Cobrança #%d de %s criada.", c.ID, domain.FormatBRL(c.Amount))
	return nil
}

func (a *App) editCharge(ctx context.Context, args []string) error {
	id, err := parseID(args, "editcharge <id>")
	if err != nil {
		return err
	}
	c, err := a.svc.Charges.Get(ctx, id)
	if err != nil {
		return err
	}

	form, err := a.chargeForm(domain.ChargeForm{
		PayerID:          strconv.FormatInt(c.PayerID, 10),
		Amount:           domain.FormatBRL(c.Amount),
		Description:      c.Description,
		DueDate:          domain.DisplayOrRaw(c.DueDate),
		PixKey:           c.PixKey,
		FineAmount:       domain.FormatBRL(c.FineAmount),
		InterestRate:     domain.FormatPercent(c.InterestRate),
		NotifyDaysBefore: strconv.Itoa(c.NotifyDaysBefore),
	})
	if err != nil {
		return err
	}
	if _, err := a.svc.Charges.Update(ctx, id, form); err != nil {
		return err
	}
	a.say("Cobrança atualizada com sucesso!")
	return nil
}

func (a *App) payCharge(ctx context.Context, args []string) error {
	id, err := parseID(args, "paycharge <id>")
	if err != nil {
		return err
	}
	c, err := a.svc.Charges.MarkPaid(ctx, id)
	if err != nil {
		return err
	}
	a.say("Cobrança #%d marcada como paga.", c.ID)
	return nil
}

func (a *App) removeCharge(ctx context.Context, args []string) error {
	id, err := parseID(args, "rmcharge <id>")
	if err != nil {
		return err
	}
	ok, err := a.confirm("Remover a cobrança?")
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Charges.Delete(ctx, id); err != nil {
		return err
	}
	a.say("Cobrança removida.")
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	id, err := parseID(args, "history <payerId>")
	if err != nil {
		return err
	}
	h, err := a.svc.Dashboard.PayerHistory(ctx, id)
	if err != nil {
		return err
	}
	a.say(renderHistory(h))
	return nil
}

func (a *App) chargeForm(f domain.ChargeForm) (domain.ChargeForm, error) {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Pagador (id)", &f.PayerID},
		{"Valor", &f.Amount},
		{"Descrição", &f.Description},
		{"Vencimento (DD/MM/AAAA)", &f.DueDate},
		{"Chave PIX", &f.PixKey},
		{"Multa", &f.FineAmount},
		{"Juros ao mês", &f.InterestRate},
		{"Avisar quantos dias antes", &f.NotifyDaysBefore},
	}
	for _, fd := range fields {
		v, err := a.askDefault(fd.prompt, *fd.dst)
		if err != nil {
			return f, err
		}
		*fd.dst = v
	}
	return f, nil
}
