// Package cancelclient talks to the cancellation HTTP API. It implements wizard.CancellationAPI.
package cancelclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cancelflow-be/pkg/wizard"
)

type Client struct {
	BaseURL string
	Token   string // optional Bearer token; without it the server uses its demo user
	Client  *http.Client
}

var _ wizard.CancellationAPI = &Client{}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// --- Wire types ---

type createRequest struct {
	UserId         string `json:"userId"`
	SubscriptionId string `json:"subscriptionId"`
}

type createResponse struct {
	Id              string `json:"id"`
	DownsellVariant string `json:"downsell_variant"`
}

type updateRequest struct {
	CancellationId   string  `json:"cancellationId"`
	Reason           *string `json:"reason,omitempty"`
	AcceptedDownsell *bool   `json:"acceptedDownsell,omitempty"`
}

// Cancellation is the full record as returned by the API.
type Cancellation struct {
	Id               string    `json:"id"`
	UserId           string    `json:"user_id"`
	SubscriptionId   string    `json:"subscription_id"`
	DownsellVariant  string    `json:"downsell_variant"`
	Reason           *string   `json:"reason"`
	AcceptedDownsell bool      `json:"accepted_downsell"`
	CreatedAt        time.Time `json:"created_at"`
}

type SessionInfo struct {
	UserId       string `json:"user_id"`
	Email        string `json:"email"`
	Subscription *struct {
		Id           string `json:"id"`
		MonthlyPrice int64  `json:"monthly_price"`
		Status       string `json:"status"`
	} `json:"subscription"`
}

// WizardSession converts the session for the wizard controller.
func (s SessionInfo) WizardSession() (wizard.Session, error) {
	if s.Subscription == nil {
		return wizard.Session{}, fmt.Errorf("user %s has no subscription", s.UserId)
	}
	return wizard.Session{
		UserID:         s.UserId,
		SubscriptionID: s.Subscription.Id,
		MonthlyPrice:   s.Subscription.MonthlyPrice,
	}, nil
}

// APIError is a non-2xx reply.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cancellation api: %d %s", e.Status, e.Message)
}

// --- Calls ---

func (c *Client) Create(ctx context.Context, userId, subscriptionId string) (wizard.Created, error) {
	var res createResponse
	err := c.do(ctx, http.MethodPost, "/api/cancellations", createRequest{UserId: userId, SubscriptionId: subscriptionId}, &res)
	if err != nil {
		return wizard.Created{}, err
	}
	return wizard.Created{ID: res.Id, Variant: res.DownsellVariant}, nil
}

func (c *Client) Update(ctx context.Context, cancellationId string, u wizard.Update) error {
	_, err := c.UpdateCancellation(ctx, cancellationId, u)
	return err
}

// UpdateCancellation is Update returning the stored record.
func (c *Client) UpdateCancellation(ctx context.Context, cancellationId string, u wizard.Update) (*Cancellation, error) {
	var res Cancellation
	err := c.do(ctx, http.MethodPut, "/api/cancellations", updateRequest{
		CancellationId:   cancellationId,
		Reason:           u.Reason,
		AcceptedDownsell: u.AcceptedDownsell,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Get(ctx context.Context, cancellationId string) (*Cancellation, error) {
	var res Cancellation
	if err := c.do(ctx, http.MethodGet, "/api/cancellations/"+cancellationId, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Session(ctx context.Context) (*SessionInfo, error) {
	var envelope struct {
		Data SessionInfo `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/session", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &errBody) == nil {
			if errBody.Error != "" {
				msg = errBody.Error
			} else if errBody.Message != "" {
				msg = errBody.Message
			}
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
