package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"

	"github.com/rankforge/audit-service/internal/entity"
	"github.com/rankforge/audit-service/internal/service"
)

const (
	crawlerEventStarted  = "started"
	crawlerEventFindings = "findings"
	crawlerEventFinished = "finished"
)

// CrawlerEvent is the envelope the crawler publishes for every run callback.
type CrawlerEvent struct {
	Type        string              `json:"type"`
	RunID       uuid.UUID           `json:"run_id"`
	Success     bool                `json:"success"`
	ErrorDetail string              `json:"error_detail"`
	Findings    []entity.RawFinding `json:"findings"`
}

type EventHandler struct {
	l       *slog.Logger
	service *service.Service
}

func NewEventHandler(l *slog.Logger, service *service.Service) *EventHandler {
	return &EventHandler{
		l:       l,
		service: service,
	}
}

// OnCrawlerEvent dispatches a crawler callback to the run state machine.
// Stale callbacks for runs that moved on, canceled runs included, are
// discarded rather than retried: the error is logged and the message is
// committed.
func (h *EventHandler) OnCrawlerEvent(ctx context.Context, m kafka.Message) error {
	var event CrawlerEvent

	err := json.Unmarshal(m.Value, &event)
	if err != nil {
		h.l.Error(fmt.Sprintf("unmarshal crawler event: %s", err))
		return nil
	}

	switch event.Type {
	case crawlerEventStarted:
		err = h.service.CrawlerStarted(ctx, event.RunID)
	case crawlerEventFindings:
		_, err = h.service.FindingsReceived(ctx, event.RunID, event.Findings)
	case crawlerEventFinished:
		err = h.service.CrawlerFinished(ctx, event.RunID, event.Success, event.ErrorDetail)
	default:
		h.l.Warn("unknown crawler event type", "type", event.Type, "run_id", event.RunID)
		return nil
	}

	if err != nil {
		if errors.Is(err, entity.ErrInvalidTransition) || errors.Is(err, entity.ErrNotFound) {
			h.l.Warn("crawler event discarded", "type", event.Type, "run_id", event.RunID, "reason", err.Error())
			return nil
		}

		return fmt.Errorf("handle crawler %s event for run %s: %w", event.Type, event.RunID, err)
	}

	return nil
}
