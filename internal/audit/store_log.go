package audit

import (
	"context"
	"log/slog"
)

// LogStore writes events to a structured logger. It is the default sink when no
// broker is configured.
type LogStore struct {
	logger *slog.Logger
}

func NewLogStore(logger *slog.Logger) *LogStore {
	return &LogStore{logger: logger}
}

func (s *LogStore) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit",
		"action", string(event.Action),
		"user_id", event.UserID,
		"subject_id", event.SubjectID,
		"request_id", event.RequestID,
		"reason", event.Reason,
		"count", event.Count,
		"timestamp", event.Timestamp,
	)
	return nil
}
