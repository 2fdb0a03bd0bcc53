package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"conbi/internal/models"
	"conbi/internal/parser"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Periodically log tasks that are due today or overdue",
	Long: `remind runs in the foreground and checks the signed-in user's tasks on a
schedule (CONBI_REMIND_EVERY, default 1h), logging anything due today or
already overdue. Stop it with ctrl+c.`,
	Args: cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, args []string, env *appEnv) error {
		session, err := env.auth.CurrentSession()
		if err != nil {
			return err
		}
		if session == nil {
			return errors.New("not signed in, run conbi first")
		}

		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "conbi",
		})

		check := func() {
			tasks, err := env.store.ListTasks(context.Background(), session.User.ID)
			if err != nil {
				logger.Error("fetch tasks", "err", err)
				return
			}
			due, overdue := splitDue(tasks, time.Now())
			for _, t := range overdue {
				logger.Warn("overdue", "task", t.Title, "due", parser.FormatCardDate(*t.DueDate))
			}
			for _, t := range due {
				logger.Info("due today", "task", t.Title)
			}
			if len(due) == 0 && len(overdue) == 0 {
				logger.Debug("nothing due")
			}
		}

		c := cron.New()
		if _, err := c.AddFunc(fmt.Sprintf("@every %s", env.cfg.RemindEvery), check); err != nil {
			return fmt.Errorf("schedule reminders: %w", err)
		}

		logger.Info("reminders started", "user", session.User.Email, "every", env.cfg.RemindEvery)
		check()
		c.Start()
		defer c.Stop()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("reminders stopped")
		return nil
	}),
}

// splitDue partitions incomplete dated tasks into due-today and overdue sets.
// Days are compared as local calendar days, matching how due dates are stored.
func splitDue(tasks []models.Task, now time.Time) (due, overdue []models.Task) {
	today := calendarDay(now)
	for _, t := range tasks {
		if t.DueDate == nil || t.Status == models.StatusCompleted {
			continue
		}
		d := calendarDay(*t.DueDate)
		switch {
		case d.Equal(today):
			due = append(due, t)
		case d.Before(today):
			overdue = append(overdue, t)
		}
	}
	return due, overdue
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
