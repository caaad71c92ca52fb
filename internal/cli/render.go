package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// ============================================================
// Rendering
// ============================================================

func table(write func(w *tabwriter.Writer)) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	write(w)
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// monthLabel turns "2025-03" into "03/2025".
func monthLabel(key string) string {
	y, m, ok := strings.Cut(key, "-")
	if !ok {
		return key
	}
	return m + "/" + y
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func renderStatus(st *domain.SessionStatus) string {
	switch {
	case st.LoggedIn && st.ProfileComplete:
		return fmt.Sprintf("Conectado como %s.", orDash(st.DisplayName))
	case st.LoggedIn:
		return "Conectado. Cadastro adicional pendente (use 'complete')."
	case st.Pending != nil:
		return fmt.Sprintf("Aguardando código enviado para %s (use 'verify').", st.Pending.Email)
	case st.HasResetToken:
		return "Código confirmado. Defina a nova senha com 'reset'."
	}
	return "Nenhuma sessão ativa. Use 'login' ou 'register'."
}

func renderProfile(u *domain.User) string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Nome:\t%s\n", orDash(u.Name))
		fmt.Fprintf(w, "E-mail:\t%s\n", orDash(u.Email))
		fmt.Fprintf(w, "Telefone:\t%s\n", orDash(u.Phone))
		fmt.Fprintf(w, "CPF/CNPJ:\t%s\n", orDash(domain.FormatDocument(u.CPFCNPJ)))
		fmt.Fprintf(w, "Endereço:\t%s\n", orDash(u.Address))
		fmt.Fprintf(w, "Nascimento:\t%s\n", orDash(domain.DisplayOrRaw(u.Birthdate)))
		if u.Avatar != "" {
			fmt.Fprintf(w, "Avatar:\t%s\n", u.Avatar)
		}
	})
}

func renderPayers(payers []domain.Payer) string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNOME\tE-MAIL\tTELEFONE\tCATEGORIA")
		for _, p := range payers {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, orDash(p.Email), orDash(p.Phone), orDash(p.Category))
		}
	})
}

func renderPayer(p *domain.Payer) string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Pagador #%d\t\n", p.ID)
		fmt.Fprintf(w, "Nome:\t%s\n", p.Name)
		fmt.Fprintf(w, "Descrição:\t%s\n", orDash(p.Description))
		fmt.Fprintf(w, "CPF/CNPJ:\t%s\n", orDash(domain.FormatDocument(p.CPFCNPJ)))
		fmt.Fprintf(w, "E-mail:\t%s\n", orDash(p.Email))
		fmt.Fprintf(w, "Telefone:\t%s\n", orDash(p.Phone))
		fmt.Fprintf(w, "Categoria:\t%s\n", orDash(p.Category))
		fmt.Fprintf(w, "CEP:\t%s\n", orDash(p.CEP))
		fmt.Fprintf(w, "Endereço:\t%s\n", orDash(p.Address))
	})
}

func writeChargeRows(w *tabwriter.Writer, charges []domain.Charge) {
	for _, c := range charges {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			c.ID, orDash(c.PayerName), domain.FormatBRL(c.Amount), domain.DisplayOrRaw(c.DueDate), c.Status.Label())
	}
}

func renderCharges(charges []domain.Charge) string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tPAGADOR\tVALOR\tVENCIMENTO\tSITUAÇÃO")
		writeChargeRows(w, charges)
	})
}

func renderCharge(c *domain.Charge, now time.Time) string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Cobrança #%d\t\n", c.ID)
		fmt.Fprintf(w, "Pagador:\t%s (#%d)\n", orDash(c.PayerName), c.PayerID)
		fmt.Fprintf(w, "Valor:\t%s\n", domain.FormatBRL(c.Amount))
		fmt.Fprintf(w, "Descrição:\t%s\n", orDash(c.Description))
		fmt.Fprintf(w, "Vencimento:\t%s\n", domain.DisplayOrRaw(c.DueDate))
		fmt.Fprintf(w, "Chave PIX:\t%s\n", c.PixKey)
		fmt.Fprintf(w, "Multa:\t%s\n", domain.FormatBRL(c.FineAmount))
		fmt.Fprintf(w, "Juros ao mês:\t%s\n", domain.FormatPercent(c.InterestRate))
		fmt.Fprintf(w, "Aviso:\t%d dia(s) antes\n", c.NotifyDaysBefore)
		fmt.Fprintf(w, "Situação:\t%s\n", c.Status.Label())
		if c.Status == domain.ChargeOverdue {
			fmt.Fprintf(w, "Valor atualizado:\t%s\n", domain.FormatBRL(c.AmountDue(now)))
		}
		if c.PaidAt != nil {
			fmt.Fprintf(w, "Pago em:\t%s\n", c.PaidAt.Format(domain.DisplayDateLayout))
		}
	})
}

func renderDashboard(d *domain.Dashboard, upcomingDays int) string {
	var b strings.Builder
	b.WriteString(table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Pagadores:\t%d\t\n", d.PayerCount)
		for _, st := range []domain.ChargeStatus{domain.ChargePaid, domain.ChargePending, domain.ChargeOverdue} {
			t := d.Totals[st]
			fmt.Fprintf(w, "%s:\t%d\t%s\n", st.Label(), t.Count, domain.FormatBRL(t.Amount))
		}
	}))

	if len(d.Months) > 0 {
		b.WriteString("\n\nPor mês de vencimento:\n")
		b.WriteString(table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "MÊS\tRECEBIDO\tPENDENTE\tATRASADO\tTOTAL")
			for _, m := range d.Months {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", monthLabel(m.Month),
					domain.FormatBRL(m.Received), domain.FormatBRL(m.Pending),
					domain.FormatBRL(m.Overdue), domain.FormatBRL(m.Total()))
			}
		}))
	}

	fmt.Fprintf(&b, "\n\nA vencer nos próximos %d dias:\n", upcomingDays)
	if len(d.Upcoming) == 0 {
		b.WriteString("  nenhuma")
	} else {
		b.WriteString(renderCharges(d.Upcoming))
	}

	b.WriteString("\n\nEm atraso:\n")
	if len(d.Overdue) == 0 {
		b.WriteString("  nenhuma")
	} else {
		b.WriteString(renderCharges(d.Overdue))
	}
	return b.String()
}

func renderHistory(h *domain.PayerHistory) string {
	var b strings.Builder
	name := ""
	if h.Payer != nil {
		name = h.Payer.Name
	}
	fmt.Fprintf(&b, "Cobranças de %s", orDash(name))
	if len(h.Months) == 0 {
		b.WriteString("\n  nenhuma")
		return b.String()
	}
	for _, m := range h.Months {
		fmt.Fprintf(&b, "\n\n%s (total %s)\n", monthLabel(m.Month), domain.FormatBRL(m.Total))
		b.WriteString(table(func(w *tabwriter.Writer) {
			writeChargeRows(w, m.Charges)
		}))
	}
	return b.String()
}

func renderNotifications(items []domain.Notification) string {
	return table(func(w *tabwriter.Writer) {
		for _, n := range items {
			fmt.Fprintf(w, "%s\t%s\n", n.CreatedAt.Local().Format("02/01/2006 15:04"), n.Message)
		}
	})
}

func renderStats(s *domain.ClientStats) string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Requisições:\t%.0f\n", s.TotalRequests)
		fmt.Fprintf(w, "Erros:\t%.0f (%.1f%%)\n", s.ErrorCount, s.ErrorRate*100)
		fmt.Fprintf(w, "Latência média:\t%.1f ms\n", s.AvgLatencyMs)
		fmt.Fprintf(w, "Cache:\t%.0f acertos, %.0f faltas (%.1f%%)\n", s.CacheHits, s.CacheMisses, s.CacheHitRate*100)
	})
}
