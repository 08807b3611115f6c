package cron

import (
	"context"
	"time"

	"finly/internal/services"
	"finly/internal/store"
	"finly/pkg/utils"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// StartCronJob schedules the daily budget alert digest.
func StartCronJob(st store.Store, alerts *services.BudgetAlertService) *cron.Cron {
	c := cron.New()

	// Runs daily at 08:00 and emails users whose budgets crossed a threshold
	_, err := c.AddFunc("0 8 * * *", func() {
		if err := SendBudgetAlertDigests(st, alerts); err != nil {
			utils.Logger.Errorf("Cron job failed to send budget alert digests: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule budget alert digest job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (budget alert digest daily at 08:00)")
	return c
}

// SendBudgetAlertDigests recomputes alerts for every user that owns a
// budget and emails a digest to those with at least one alert. Email
// sends fan out concurrently, a few at a time.
func SendBudgetAlertDigests(st store.Store, alerts *services.BudgetAlertService) error {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	users, err := st.UsersWithBudgets(ctx)
	if err != nil {
		return utils.ErrorHandler(err, "failed to fetch users with budgets")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	for _, user := range users {
		g.Go(func() error {
			userAlerts, err := alerts.ComputeAlerts(ctx, user.ID)
			if err != nil {
				utils.Logger.Errorf("Failed to compute alerts for user %d: %v", user.ID, err)
				return nil
			}
			if len(userAlerts) == 0 {
				return nil
			}

			if err := utils.SendBudgetAlertEmail(user.Email, user.Username, userAlerts); err != nil {
				utils.Logger.Errorf("Failed to send alert digest to %s: %v", user.Email, err)
				return nil
			}

			utils.Logger.Infof("📧 Sent budget alert digest to %s (%d alerts)", user.Email, len(userAlerts))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	utils.Logger.Info("✅ Finished sending budget alert digests.")
	return nil
}
