package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/assessly-platform/assessly-api/internal/dto"
)

const resultGradedSubject = "assessly.results.graded"

// ResultPublisher broadcasts graded results for downstream consumers
// (certificate mailers, analytics).
type ResultPublisher interface {
	PublishGraded(ctx context.Context, result dto.ResultResponse) error
}

type resultGradedEvent struct {
	Result dto.ResultResponse `json:"result"`
	SentAt time.Time          `json:"sent_at"`
}

type natsResultPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSResultPublisher constructs a publisher over an established NATS
// connection.
func NewNATSResultPublisher(conn *nats.Conn, logger zerolog.Logger) ResultPublisher {
	return &natsResultPublisher{
		conn:    conn,
		subject: resultGradedSubject,
		logger:  logger.With().Str("component", "result_publisher").Logger(),
	}
}

func (p *natsResultPublisher) PublishGraded(_ context.Context, result dto.ResultResponse) error {
	if p.conn == nil {
		return nil
	}

	payload, err := json.Marshal(resultGradedEvent{Result: result, SentAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return err
	}

	p.logger.Debug().Int64("result_id", result.ResultID).Msg("result event published")
	return nil
}
