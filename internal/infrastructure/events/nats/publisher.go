package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/infrastructure/resilience"
)

const DefaultSubject = "advisor.query.answered"

type Config struct {
	URL     string
	Subject string
	Name    string
}

// Publisher emits answered-query events as JSON messages. Delivery is
// fire-and-forget from the pipeline's point of view; the executor only
// smooths over short broker hiccups.
type Publisher struct {
	conn     *nats.Conn
	subject  string
	executor *resilience.Executor
}

func NewPublisher(cfg Config, executor *resilience.Executor) (*Publisher, error) {
	subject := cfg.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			slog.Info("nats_reconnected", "url", conn.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	return &Publisher{conn: conn, subject: subject, executor: executor}, nil
}

func (p *Publisher) PublishQueryAnswered(ctx context.Context, result domain.QueryResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal query event: %w", err)
	}

	return p.executor.Execute(ctx, "nats_publish", func(context.Context) error {
		if err := p.conn.Publish(p.subject, payload); err != nil {
			return fmt.Errorf("publish to %s: %w", p.subject, err)
		}
		return nil
	}, classifyPublishError)
}

func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		slog.Warn("nats_drain_failed", "error", err)
		p.conn.Close()
	}
}

func classifyPublishError(err error) resilience.ErrorClassification {
	if errors.Is(err, nats.ErrConnectionClosed) || errors.Is(err, nats.ErrInvalidConnection) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
}
