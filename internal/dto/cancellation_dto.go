package dto

import (
	"encoding/json"
	"math"
	"time"
)

// --- Create ---

// CreateCancellationRequest starts (or resumes) a cancellation for a user
type CreateCancellationRequest struct {
	UserId         string `json:"userId" validate:"required" message:"Invalid user ID format"`
	SubscriptionId string `json:"subscriptionId" validate:"required" message:"Invalid subscription ID"`
}

// CreateCancellationResponse deliberately exposes only the id and the variant
type CreateCancellationResponse struct {
	Id              string `json:"id"`
	DownsellVariant string `json:"downsell_variant"`
}

// --- Update ---

// UpdateCancellationRequest is a partial update; fields that are absent from the body stay untouched
type UpdateCancellationRequest struct {
	CancellationId   string         `json:"cancellationId" validate:"required" message:"Cancellation ID is required"`
	Reason           OptionalString `json:"reason"`
	AcceptedDownsell OptionalBool   `json:"acceptedDownsell"`
}

// CancellationResponse is the full record
type CancellationResponse struct {
	Id               string    `json:"id"`
	UserId           string    `json:"user_id"`
	SubscriptionId   string    `json:"subscription_id"`
	DownsellVariant  string    `json:"downsell_variant"`
	Reason           *string   `json:"reason"`
	AcceptedDownsell bool      `json:"accepted_downsell"`
	CreatedAt        time.Time `json:"created_at"`
}

// --- Presence-tracking JSON fields ---

// OptionalString records whether the key was present in the body. A JSON null counts as present
// and decodes to the empty string.
type OptionalString struct {
	Set   bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns nil when the field was absent.
func (o OptionalString) Ptr() *string {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// OptionalBool accepts any JSON value and coerces it with JavaScript truthiness:
// false, 0, "", null are false; everything else is true.
type OptionalBool struct {
	Set   bool
	Value bool
}

func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	o.Set = true

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Value = truthy(raw)
	return nil
}

func (o OptionalBool) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o OptionalBool) Ptr() *bool {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	default:
		return true
	}
}

// --- Events ---

// CancellationEventMessage is the payload carried on the in-process event bus
type CancellationEventMessage struct {
	Type           string                 `json:"type"`
	CancellationId string                 `json:"cancellation_id"`
	UserId         string                 `json:"user_id"`
	Data           map[string]interface{} `json:"data"`
	OccurredAt     time.Time              `json:"occurred_at"`
}
