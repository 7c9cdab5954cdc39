package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/staffdesk/staff-service/internal/config"
	"github.com/staffdesk/staff-service/internal/events"
)

func TestNotificationServiceLogsStaffEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "https://hooks.example.com/staff",
	})
	svc.RegisterHandlers()

	actor := int64(1)
	ctx := context.Background()
	if err := dispatcher.Publish(ctx, events.NewEvent(events.EventStaffCreated, 5, &actor, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := dispatcher.Publish(ctx, events.NewEvent(events.EventStaffDeleted, 5, &actor, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if n := logs.FilterMessage("StaffCreated").Len(); n != 1 {
		t.Fatalf("expected 1 StaffCreated log, got %d", n)
	}
	if n := logs.FilterMessage("StaffChanged").Len(); n != 1 {
		t.Fatalf("expected 1 StaffChanged log, got %d", n)
	}
	if n := logs.FilterMessage("sendEmailNotificationStub").Len(); n != 1 {
		t.Fatalf("expected email stub only for creation, got %d", n)
	}
	if n := logs.FilterMessage("sendWebhookNotificationStub").Len(); n != 2 {
		t.Fatalf("expected 2 webhook stubs, got %d", n)
	}
	if n := logs.FilterField(zap.Int64("actor_id", 1)).Len(); n != 2 {
		t.Fatalf("expected actor on both events, got %d", n)
	}
}

func TestNotificationServiceSkipsUnconfiguredChannels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{}).RegisterHandlers()

	dispatcher.Publish(context.Background(), events.NewEvent(events.EventStaffUpdated, 5, nil, nil))

	if logs.FilterMessage("sendWebhookNotificationStub").Len() != 0 || logs.FilterMessage("sendEmailNotificationStub").Len() != 0 {
		t.Fatal("stubs must not fire without configuration")
	}
	if logs.FilterMessage("StaffChanged").Len() != 1 {
		t.Fatal("event must still be logged")
	}
}
