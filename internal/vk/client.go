package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiEndpoint = "https://api.vk.com/method/"
	apiVersion  = "5.131"
)

// Client is a minimal VK Bots API client covering the methods the quiz
// bot needs: sending messages and obtaining the long-poll server.
type Client struct {
	http   *http.Client
	apiURL string
	token  string
	logger *zap.Logger
	rnd    *rand.Rand
}

// NewClient creates a VK API client for a community access token.
func NewClient(token string, logger *zap.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: 60 * time.Second},
		apiURL: apiEndpoint,
		token:  token,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("vk api error %d: %s", e.Code, e.Message)
}

// SendMessage sends a text message to a user, optionally with a JSON-encoded
// reply keyboard. random_id deduplicates resends on the VK side.
func (c *Client) SendMessage(ctx context.Context, userID int64, text, keyboard string) error {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	params.Set("message", text)
	params.Set("random_id", strconv.FormatInt(c.rnd.Int63(), 10))
	if keyboard != "" {
		params.Set("keyboard", keyboard)
	}

	var resp struct {
		Error *apiError `json:"error"`
	}
	if err := c.call(ctx, "messages.send", params, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("send message to %d: %w", userID, resp.Error)
	}
	return nil
}

// LongPollServer holds the coordinates of a Bots Long Poll session.
type LongPollServer struct {
	Key    string `json:"key"`
	Server string `json:"server"`
	TS     string `json:"ts"`
}

// GetLongPollServer fetches a fresh long-poll server for the community.
func (c *Client) GetLongPollServer(ctx context.Context, groupID string) (LongPollServer, error) {
	params := url.Values{}
	params.Set("group_id", groupID)

	var resp struct {
		Response LongPollServer `json:"response"`
		Error    *apiError      `json:"error"`
	}
	if err := c.call(ctx, "groups.getLongPollServer", params, &resp); err != nil {
		return LongPollServer{}, err
	}
	if resp.Error != nil {
		return LongPollServer{}, fmt.Errorf("get long poll server: %w", resp.Error)
	}
	return resp.Response, nil
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out interface{}) error {
	params.Set("access_token", c.token)
	params.Set("v", apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+method, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug("Calling VK API", zap.String("method", method))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}
