// Package wizard drives the cancel flow on the client side: which screen is shown, when the
// cancellation API is called, and how the flow branches on the variant and the user's choices.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/pkg/utils"
)

var (
	ErrInvalidAction = errors.New("action not allowed on the current step")
	ErrBusy          = errors.New("a request is already in flight")
	ErrInvalidReason = errors.New("please select a reason")
)

// Created is what the API returns when a cancellation starts.
type Created struct {
	ID      string
	Variant string
}

// Update is a partial update; nil fields are not sent.
type Update struct {
	Reason           *string
	AcceptedDownsell *bool
}

type CancellationAPI interface {
	Create(ctx context.Context, userId, subscriptionId string) (Created, error)
	Update(ctx context.Context, cancellationId string, update Update) error
}

// Session is the user the flow runs for.
type Session struct {
	UserID         string
	SubscriptionID string
	MonthlyPrice   int64 // cents
}

// Controller is safe for concurrent use, but runs at most one API call at a time.
type Controller struct {
	mu     sync.Mutex
	api    CancellationAPI
	sess   Session
	logger logger.ILogger

	step           Step
	busy           bool
	cancellationId string
	variant        string
	reason         string
}

func New(api CancellationAPI, sess Session, log logger.ILogger) *Controller {
	return &Controller{
		api:    api,
		sess:   sess,
		logger: log,
		step:   ConfirmStep{},
	}
}

func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Busy reports whether an API call is pending; a UI should disable its controls meanwhile.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) CancellationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancellationId
}

func (c *Controller) Variant() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.variant
}

// Abort leaves the flow from the confirm step without touching the server.
func (c *Controller) Abort() (Step, error) {
	return c.local("abort", StepConfirm, func() Step { return ExitStep{Destination: DestinationHome} })
}

// Confirm starts the cancellation. Variant A goes to the reason step, B to the downsell offer.
func (c *Controller) Confirm(ctx context.Context) (Step, error) {
	if err := c.begin("confirm", StepConfirm); err != nil {
		return c.Step(), err
	}

	created, err := c.api.Create(ctx, c.sess.UserID, c.sess.SubscriptionID)
	if err == nil && created.Variant != "A" && created.Variant != "B" {
		err = fmt.Errorf("unexpected downsell variant %q", created.Variant)
	}
	if err != nil {
		return c.fail("confirm", err)
	}

	var next Step = ReasonStep{Options: Reasons}
	if created.Variant == "B" {
		next = DownsellStep{
			CurrentPrice: c.sess.MonthlyPrice,
			OfferPrice:   utils.DownsellPrice(c.sess.MonthlyPrice),
		}
	}

	return c.commit(next, func() {
		c.cancellationId = created.ID
		c.variant = created.Variant
	})
}

func (c *Controller) AcceptDownsell(ctx context.Context) (Step, error) {
	if err := c.begin("accept downsell", StepDownsell); err != nil {
		return c.Step(), err
	}

	accepted := true
	if err := c.api.Update(ctx, c.cancellationId, Update{AcceptedDownsell: &accepted}); err != nil {
		return c.fail("accept downsell", err)
	}
	return c.commit(ExitStep{Destination: DestinationAccount}, nil)
}

func (c *Controller) DeclineDownsell() (Step, error) {
	return c.local("decline downsell", StepDownsell, func() Step { return ReasonStep{Options: Reasons} })
}

// SubmitReason stores the reason. Reasons about price or a competitor lead to the special
// discount offer; the rest complete the flow.
func (c *Controller) SubmitReason(ctx context.Context, reason string) (Step, error) {
	if err := c.begin("submit reason", StepReason); err != nil {
		return c.Step(), err
	}
	if !IsValidReason(reason) {
		c.release()
		return c.Step(), ErrInvalidReason
	}

	if err := c.api.Update(ctx, c.cancellationId, Update{Reason: &reason}); err != nil {
		return c.fail("submit reason", err)
	}

	var next Step = CompleteStep{}
	if QualifiesForSpecialDiscount(reason) {
		next = SpecialDiscountStep{
			Reason:       reason,
			CurrentPrice: c.sess.MonthlyPrice,
			OfferPrice:   utils.SpecialDiscountPrice(c.sess.MonthlyPrice),
		}
	}
	return c.commit(next, func() { c.reason = reason })
}

func (c *Controller) AcceptSpecialDiscount(ctx context.Context) (Step, error) {
	if err := c.begin("accept special discount", StepSpecialDiscount); err != nil {
		return c.Step(), err
	}

	accepted := true
	annotated := c.reason + utils.SpecialDiscountNote
	if err := c.api.Update(ctx, c.cancellationId, Update{Reason: &annotated, AcceptedDownsell: &accepted}); err != nil {
		return c.fail("accept special discount", err)
	}
	return c.commit(ExitStep{Destination: DestinationAccount}, nil)
}

func (c *Controller) DeclineSpecialDiscount() (Step, error) {
	return c.local("decline special discount", StepSpecialDiscount, func() Step { return CompleteStep{} })
}

func (c *Controller) Finish() (Step, error) {
	return c.local("finish", StepComplete, func() Step { return ExitStep{Destination: DestinationHome} })
}

// begin claims the in-flight slot for an action valid on step want.
func (c *Controller) begin(action, want string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrBusy
	}
	if c.step.Name() != want {
		return fmt.Errorf("%w: %s on %s", ErrInvalidAction, action, c.step.Name())
	}
	c.busy = true
	return nil
}

func (c *Controller) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// fail keeps the current step and re-enables actions. Nothing is retried.
func (c *Controller) fail(action string, err error) (Step, error) {
	c.logger.Error("WIZARD", "Request failed", map[string]interface{}{
		"action":          action,
		"cancellation_id": c.CancellationID(),
		"error":           err.Error(),
	})
	c.release()
	return c.Step(), err
}

func (c *Controller) commit(next Step, apply func()) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.busy = false
	if !CanTransition(c.step.Name(), next.Name()) {
		return c.step, fmt.Errorf("%w: %s to %s", ErrInvalidAction, c.step.Name(), next.Name())
	}
	if apply != nil {
		apply()
	}
	c.step = next
	return next, nil
}

// local runs an action that needs no server call.
func (c *Controller) local(action, want string, next func() Step) (Step, error) {
	if err := c.begin(action, want); err != nil {
		return c.Step(), err
	}
	return c.commit(next(), nil)
}
