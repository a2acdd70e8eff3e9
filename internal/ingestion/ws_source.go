package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"salary-benchmark-lab/internal/storage"
)

// WSFeedConfig configures feed client behavior.
type WSFeedConfig struct {
	// ReconnectDelay is initial delay before reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
}

// DefaultWSFeedConfig returns default feed configuration.
func DefaultWSFeedConfig() WSFeedConfig {
	return WSFeedConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		ReadTimeout:       60 * time.Second,
	}
}

// feedFrame is one message on the posting feed.
type feedFrame struct {
	PositionID string     `json:"position_id"`
	Posting    RawPosting `json:"posting"`
}

// WSFeedSource consumes a WebSocket feed of raw posting frames and pushes
// each frame through the normal ingestion path. It is a push-style
// alternative to the pull provider; the records it delivers are ordinary
// postings downstream.
type WSFeedSource struct {
	endpoint      string
	config        WSFeedConfig
	runner        *Runner
	positionStore storage.PositionStore
	logger        *log.Logger
}

// NewWSFeedSource creates a feed source reading from endpoint.
func NewWSFeedSource(endpoint string, runner *Runner, positionStore storage.PositionStore, config *WSFeedConfig, logger *log.Logger) *WSFeedSource {
	cfg := DefaultWSFeedConfig()
	if config != nil {
		cfg = *config
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WSFeedSource{
		endpoint:      endpoint,
		config:        cfg,
		runner:        runner,
		positionStore: positionStore,
		logger:        logger,
	}
}

// Run consumes the feed until the context is cancelled, reconnecting with
// exponential backoff on connection loss. Malformed frames and frames for
// unknown positions are logged and skipped; they never stop the feed.
func (s *WSFeedSource) Run(ctx context.Context) error {
	delay := s.config.ReconnectDelay

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.consume(ctx)
		if err != nil && ctx.Err() == nil {
			s.logger.Printf("feed connection lost: %v, reconnecting in %v", err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > s.config.MaxReconnectDelay {
			delay = s.config.MaxReconnectDelay
		}
	}
}

// consume reads frames from one connection until it fails.
func (s *WSFeedSource) consume(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return fmt.Errorf("dial feed: %w", err)
	}
	defer conn.Close()

	// Unblock ReadMessage on shutdown.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		if s.config.ReadTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
				return fmt.Errorf("set read deadline: %w", err)
			}
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read feed message: %w", err)
		}

		if err := s.handleFrame(ctx, data); err != nil {
			return err
		}
	}
}

// handleFrame ingests one feed frame. Only store failures propagate.
func (s *WSFeedSource) handleFrame(ctx context.Context, data []byte) error {
	var frame feedFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		s.logger.Printf("skipping malformed feed frame: %v", err)
		return nil
	}

	pos, err := s.positionStore.GetByID(ctx, frame.PositionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Printf("skipping frame for unknown position %s", frame.PositionID)
			return nil
		}
		return fmt.Errorf("resolve position %s: %w", frame.PositionID, err)
	}

	var result SweepResult
	return s.runner.IngestRaw(ctx, pos, []RawPosting{frame.Posting}, &result)
}
