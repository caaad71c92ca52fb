package cli

import (
	"context"
	"fmt"
)

func (a *App) dashboard(ctx context.Context, _ []string) error {
	d, err := a.svc.Dashboard.Load(ctx)
	if err != nil {
		return err
	}
	a.say(renderDashboard(d, a.svc.UpcomingDays))
	return nil
}

func (a *App) notifications(ctx context.Context, _ []string) error {
	items, err := a.svc.Notifications.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.say("Nenhuma notificação.")
		return nil
	}
	a.say(renderNotifications(items))
	return nil
}

func (a *App) stats(_ context.Context, _ []string) error {
	if a.svc.Stats == nil {
		return fmt.Errorf("stats not configured")
	}
	a.say(renderStats(a.svc.Stats()))
	return nil
}
