package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/events"
)

// NotificationService reacts to identity and session events: it delivers
// confirmation codes and writes the session audit trail.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventSessionStarted, n.handleSessionStarted)
	n.dispatcher.Subscribe(events.EventSessionEnded, n.handleSessionEnded)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event_type", string(event.Type)))
		return nil
	}
	n.logger.Info("UserRegistered", zap.String("username", payload.Username))
	n.sendConfirmationCodeStub(ctx, payload)
	return nil
}

func (n *NotificationService) handleSessionStarted(_ context.Context, event events.Event) error {
	n.logger.Info("SessionStarted", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSessionEnded(_ context.Context, event events.Event) error {
	n.logger.Info("SessionEnded", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}

// sendConfirmationCodeStub stands in for the mail relay.
func (n *NotificationService) sendConfirmationCodeStub(_ context.Context, payload events.UserRegisteredPayload) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || payload.Email == "" {
		return
	}
	n.logger.Debug("sendConfirmationCodeStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", payload.Email),
		zap.String("username", payload.Username),
		zap.String("code", payload.ConfirmationCode))
}
