package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentDesk/internal/config"
	"github.com/m04kA/SMC-AppointmentDesk/internal/infra/conversation"
	queueNotifications "github.com/m04kA/SMC-AppointmentDesk/internal/infra/queue/notifications"
	"github.com/m04kA/SMC-AppointmentDesk/internal/integrations/brevo"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/notifications"
	"github.com/m04kA/SMC-AppointmentDesk/internal/usecase/chat"
	"github.com/m04kA/SMC-AppointmentDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentDesk/pkg/logger"
	"github.com/m04kA/SMC-AppointmentDesk/pkg/metrics"
)

// app общие зависимости команд
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	location *time.Location

	db      *sql.DB
	wrapped *dbmetrics.DB
	metrics *metrics.Metrics

	stopMetricsCh chan struct{}
	closers       []func()
}

// bootstrap загружает конфигурацию, поднимает логгер и подключение к базе
func bootstrap(configPath string, withMetrics bool) (*app, error) {
	a, err := loadApp(configPath, withMetrics)
	if err != nil {
		return nil, err
	}

	if err := a.openDB(); err != nil {
		a.close()
		return nil, err
	}

	return a, nil
}

// loadApp конфигурация, часовой пояс, логгер и метрики без подключения к базе.
// Достаточно для команд, которые с базой не работают (worker).
func loadApp(configPath string, withMetrics bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	a := &app{
		cfg:           cfg,
		log:           log,
		location:      location,
		stopMetricsCh: make(chan struct{}),
	}

	if withMetrics && cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	return a, nil
}

// openDB открывает и проверяет подключение к postgres
func (a *app) openDB() error {
	cfg := a.cfg.Database

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.db = db

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	a.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Host, cfg.Port, cfg.DBName)

	// С nil-метриками обертка работает как обычный *sql.DB
	a.wrapped = dbmetrics.WrapWithDefault(db, a.metrics, a.stopMetricsCh)

	return nil
}

// onClose регистрирует освобождение ресурса, вызывается в обратном порядке
func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	close(a.stopMetricsCh)
	if a.db != nil {
		_ = a.db.Close()
	}
	_ = a.log.Close()
}

func (a *app) redisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
}

func (a *app) asynqRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}
}

// emailNotifier отправка писем через Brevo
func (a *app) emailNotifier() *notifications.Service {
	client := brevo.NewClient(
		a.cfg.Brevo.BaseURL,
		a.cfg.Brevo.APIKey,
		brevo.Contact{Email: a.cfg.Brevo.SenderEmail, Name: a.cfg.Brevo.SenderName},
		a.cfg.Brevo.TimeoutDuration(),
		a.log,
	)
	if !client.Configured() {
		a.log.Warn("Brevo is not configured, email notifications are disabled")
	}
	return notifications.NewService(client, a.cfg.Brevo.AppLink, a.log)
}

// notifier выбирает способ доставки уведомлений из конфигурации
func (a *app) notifier() appointments.Notifier {
	switch a.cfg.Notifications.Mode {
	case config.NotificationsQueue:
		client := asynq.NewClient(a.asynqRedisOpt())
		a.onClose(func() { _ = client.Close() })
		a.log.Info("Notifications are enqueued to asynq queue=%s", a.cfg.Notifications.Queue)
		return queueNotifications.NewEnqueuer(client, a.cfg.Notifications.Queue, a.cfg.Notifications.MaxRetry, a.log)

	case config.NotificationsAsync:
		async := notifications.NewAsyncNotifier(a.emailNotifier(), a.cfg.Notifications.TimeoutDuration(), a.log)
		a.onClose(async.Wait)
		a.log.Info("Notifications are sent in background goroutines")
		return async

	default:
		a.log.Info("Notifications are sent inline")
		return a.emailNotifier()
	}
}

// conversationStore хранилище истории диалога
func (a *app) conversationStore(ctx context.Context) (chat.ConversationStore, error) {
	cfg := a.cfg.Conversation

	if cfg.Backend == config.ConversationRedis {
		client := a.redisClient()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %s: %w", a.cfg.Redis.Addr, err)
		}
		a.onClose(func() { _ = client.Close() })
		a.log.Info("Conversation history is stored in redis (window=%d, ttl=%s)", cfg.Window, cfg.TTLDuration())
		return conversation.NewRedisStore(client, cfg.Window, cfg.TTLDuration()), nil
	}

	store, err := conversation.NewMemoryStore(cfg.Window, cfg.MaxIdentities)
	if err != nil {
		return nil, err
	}
	a.log.Info("Conversation history is stored in memory (window=%d, max_identities=%d)", cfg.Window, cfg.MaxIdentities)
	return store, nil
}
