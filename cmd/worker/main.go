package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/config"
	"github.com/dieg0espx/spanish-horizons-api/internal/email"
	"github.com/dieg0espx/spanish-horizons-api/internal/kafka"
	"github.com/dieg0espx/spanish-horizons-api/internal/logger"
	"github.com/dieg0espx/spanish-horizons-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.New(cfg.Environment)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	var sender email.Sender
	if cfg.Email.SendgridAPIKey != "" {
		sender = email.NewSendgridSender(cfg.Email.SendgridAPIKey, cfg.Email.FromName, cfg.Email.FromAddress)
	} else {
		sender = email.NewConsoleSender(zlog)
	}

	applicationRepo := repository.NewApplicationRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.InterviewsTopic)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.InterviewEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				zlog.Warn("decode event", zap.Error(err))
				return nil
			}
			handleEvent(ctx, zlog, sender, cfg.Email.AdminRecipients, event)
			return nil
		}); err != nil && ctx.Err() == nil {
			zlog.Error("consumer stopped", zap.Error(err))
		}
	}()

	sweep := time.NewTicker(time.Duration(cfg.Worker.ReminderSweepMinutes) * time.Minute)
	defer sweep.Stop()

	window := time.Duration(cfg.Worker.ReminderWindowHours) * time.Hour

	for {
		select {
		case <-sweep.C:
			sendReminders(ctx, zlog, applicationRepo, sender, window)
		case <-ctx.Done():
			zlog.Info("shutting down")
			return
		}
	}
}

// handleEvent sends the two booking messages; other event types are audit
// logged only. Delivery failures never feed back into the booking flow.
func handleEvent(ctx context.Context, zlog *zap.Logger, sender email.Sender, adminRecipients []string, event kafka.InterviewEvent) {
	switch event.Type {
	case kafka.EventInterviewBooked:
		if err := sender.Send(ctx, email.BookingConfirmation(event)); err != nil {
			zlog.Error("send booking confirmation", zap.Int64("application_id", event.ApplicationID), zap.Error(err))
		}
		if len(adminRecipients) > 0 {
			if err := sender.Send(ctx, email.AdminAlert(event, adminRecipients)); err != nil {
				zlog.Error("send admin alert", zap.Int64("application_id", event.ApplicationID), zap.Error(err))
			}
		}
	default:
		zlog.Info("interview event",
			zap.String("type", event.Type),
			zap.Int64("application_id", event.ApplicationID),
			zap.String("status", event.Status))
	}
}

func sendReminders(ctx context.Context, zlog *zap.Logger, repo repository.ApplicationRepository, sender email.Sender, window time.Duration) {
	now := time.Now()
	due, err := repo.ClaimDueReminders(ctx, now, now.Add(window))
	if err != nil {
		zlog.Error("claim due reminders", zap.Error(err))
		return
	}

	for _, app := range due {
		if app.InterviewDate == nil {
			continue
		}
		if err := sender.Send(ctx, email.InterviewReminder(app, *app.InterviewDate)); err != nil {
			zlog.Error("send interview reminder", zap.Int64("application_id", app.ID), zap.Error(err))
		}
	}
	if len(due) > 0 {
		zlog.Info("sent interview reminders", zap.Int("count", len(due)))
	}
}
