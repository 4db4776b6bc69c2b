package vk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Event is a normalized incoming message: who wrote and what.
type Event struct {
	UserID int64
	Text   string
}

// EventHandler processes a single incoming message.
type EventHandler func(ctx context.Context, ev Event) error

// Listener runs the Bots Long Poll loop for a community and dispatches
// new-message events. A failing event handler is logged and the loop
// continues; only an unrecoverable transport error or context cancellation
// stops it.
type Listener struct {
	client  *Client
	groupID string
	logger  *zap.Logger

	// retryDelay spaces out poll attempts after a transport failure so an
	// outage does not busy-spin the loop (and flood the operator relay)
	retryDelay time.Duration
}

// NewListener creates a long-poll listener for the given community.
func NewListener(client *Client, groupID string, logger *zap.Logger) *Listener {
	return &Listener{
		client:     client,
		groupID:    groupID,
		logger:     logger,
		retryDelay: 3 * time.Second,
	}
}

// Run blocks polling for events until ctx is canceled.
func (l *Listener) Run(ctx context.Context, handle EventHandler) error {
	server, err := l.client.GetLongPollServer(ctx, l.groupID)
	if err != nil {
		return err
	}
	ts := server.TS

	l.logger.Info("VK long poll started", zap.String("group_id", l.groupID))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := l.poll(ctx, server, ts)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			l.logger.Warn("Long poll request failed, retrying", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.retryDelay):
			}
			continue
		}

		switch resp.Failed {
		case 0:
			ts = resp.TS
		case 1:
			// history is outdated, resume from the returned ts
			ts = resp.TS
			continue
		default:
			// key expired or data lost, a new server is required
			l.logger.Info("Long poll session expired, reconnecting")
			server, err = l.client.GetLongPollServer(ctx, l.groupID)
			if err != nil {
				return err
			}
			ts = server.TS
			continue
		}

		for _, ev := range parseEvents(resp.Updates) {
			if err := handle(ctx, ev); err != nil {
				l.logger.Error("Failed to handle vk event",
					zap.Int64("user_id", ev.UserID),
					zap.Error(err),
				)
			}
		}
	}
}

type pollResponse struct {
	TS      string            `json:"ts"`
	Failed  int               `json:"failed"`
	Updates []json.RawMessage `json:"updates"`
}

func (l *Listener) poll(ctx context.Context, server LongPollServer, ts string) (pollResponse, error) {
	params := url.Values{}
	params.Set("act", "a_check")
	params.Set("key", server.Key)
	params.Set("ts", ts)
	params.Set("wait", "25")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.Server+"?"+params.Encode(), nil)
	if err != nil {
		return pollResponse{}, fmt.Errorf("build long poll request: %w", err)
	}

	httpResp, err := l.client.http.Do(req)
	if err != nil {
		return pollResponse{}, fmt.Errorf("long poll request: %w", err)
	}
	defer httpResp.Body.Close()

	var resp pollResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return pollResponse{}, fmt.Errorf("decode long poll response: %w", err)
	}
	return resp, nil
}

type update struct {
	Type   string `json:"type"`
	Object struct {
		Message struct {
			FromID int64  `json:"from_id"`
			Text   string `json:"text"`
		} `json:"message"`
	} `json:"object"`
}

// parseEvents extracts new-message events, skipping everything else.
func parseEvents(updates []json.RawMessage) []Event {
	var events []Event
	for _, raw := range updates {
		var u update
		if err := json.Unmarshal(raw, &u); err != nil {
			continue
		}
		if u.Type != "message_new" || u.Object.Message.FromID == 0 {
			continue
		}
		events = append(events, Event{
			UserID: u.Object.Message.FromID,
			Text:   u.Object.Message.Text,
		})
	}
	return events
}
