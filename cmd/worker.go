package main

import (
	"fmt"

	"github.com/spf13/cobra"

	queueNotifications "github.com/m04kA/SMC-AppointmentDesk/internal/infra/queue/notifications"
)

func newWorkerCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Deliver queued appointment notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(*configPath)
		},
	}
}

// runWorker обрабатывает очередь уведомлений (notifications.mode = "queue").
// asynq сам завершает работу по SIGINT/SIGTERM. База воркеру не нужна.
func runWorker(configPath string) error {
	a, err := loadApp(configPath, false)
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.cfg.Notifications
	handler := queueNotifications.NewHandler(a.emailNotifier(), a.log)
	server := queueNotifications.NewServer(a.asynqRedisOpt(), cfg.Concurrency, cfg.Queue)

	a.log.Info("Starting notification worker (queue=%s, concurrency=%d)", cfg.Queue, cfg.Concurrency)

	if err := server.Run(queueNotifications.NewServeMux(handler)); err != nil {
		return fmt.Errorf("notification worker: %w", err)
	}

	a.log.Info("Notification worker stopped")
	return nil
}
