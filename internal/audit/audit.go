// Package audit persists a trail of scheduling decisions. It consumes the
// event bus; nothing in the request path depends on it.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal/core/events"
)

type AuditLog struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	EventID    string    `json:"event_id" gorm:"not null"`
	EventType  string    `json:"event_type" gorm:"not null;index"`
	Payload    string    `json:"payload"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type Recorder struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRecorder(db *gorm.DB, logger *slog.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Subscribe attaches the recorder to every scheduling event type.
func (r *Recorder) Subscribe(bus *events.EventBus) {
	for _, eventType := range []string{
		events.AssignmentCreated,
		events.AssignmentRemoved,
		events.TimeOffStatusChanged,
	} {
		bus.Subscribe(eventType, r.Handle)
	}
}

func (r *Recorder) Handle(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		r.logger.Error("could not encode audit payload", "error", err, "event_id", event.EventID())
		payload = []byte("{}")
	}

	entry := &AuditLog{
		EventID:    event.EventID(),
		EventType:  event.EventType(),
		Payload:    string(payload),
		OccurredAt: event.OccurredAt(),
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		r.logger.Error("could not write audit log", "error", err, "event_id", event.EventID())
		return err
	}
	return nil
}
