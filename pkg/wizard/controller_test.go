package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cancelflow-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu      sync.Mutex
	variant string
	err     error
	creates int
	updates []Update
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeAPI) Create(ctx context.Context, userId, subscriptionId string) (Created, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.err != nil {
		return Created{}, f.err
	}
	return Created{ID: "c-1", Variant: f.variant}, nil
}

func (f *fakeAPI) Update(ctx context.Context, cancellationId string, u Update) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, u)
	return nil
}

func (f *fakeAPI) wait() {
	if f.block == nil {
		return
	}
	f.entered <- struct{}{}
	<-f.block
}

func (f *fakeAPI) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func newController(api *fakeAPI) *Controller {
	return New(api, Session{
		UserID:         "550e8400-e29b-41d4-a716-446655440001",
		SubscriptionID: "sub_001",
		MonthlyPrice:   2500,
	}, logger.NewNopLogger())
}

func TestVariantA_GoesToReason(t *testing.T) {
	api := &fakeAPI{variant: "A"}
	c := newController(api)

	step, err := c.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReasonStep{Options: Reasons}, step)
	assert.Equal(t, "c-1", c.CancellationID())
	assert.Equal(t, "A", c.Variant())
}

func TestVariantB_DownsellAccepted(t *testing.T) {
	api := &fakeAPI{variant: "B"}
	c := newController(api)
	ctx := context.Background()

	step, err := c.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, DownsellStep{CurrentPrice: 2500, OfferPrice: 1500}, step)

	step, err = c.AcceptDownsell(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExitStep{Destination: DestinationAccount}, step)

	require.Len(t, api.updates, 1)
	assert.True(t, *api.updates[0].AcceptedDownsell)
	assert.Nil(t, api.updates[0].Reason)
}

func TestVariantB_DeclineThenComplete(t *testing.T) {
	api := &fakeAPI{variant: "B"}
	c := newController(api)
	ctx := context.Background()

	_, err := c.Confirm(ctx)
	require.NoError(t, err)
	step, err := c.DeclineDownsell()
	require.NoError(t, err)
	assert.Equal(t, StepReason, step.Name())

	step, err = c.SubmitReason(ctx, ReasonTechnicalIssues)
	require.NoError(t, err)
	assert.Equal(t, CompleteStep{}, step)

	step, err = c.Finish()
	require.NoError(t, err)
	assert.Equal(t, ExitStep{Destination: DestinationHome}, step)
	assert.Len(t, api.updates, 1)
}

func TestTooExpensive_LeadsToSpecialDiscount(t *testing.T) {
	api := &fakeAPI{variant: "A"}
	c := newController(api)
	ctx := context.Background()

	_, err := c.Confirm(ctx)
	require.NoError(t, err)

	step, err := c.SubmitReason(ctx, ReasonTooExpensive)
	require.NoError(t, err)
	assert.Equal(t, SpecialDiscountStep{Reason: ReasonTooExpensive, CurrentPrice: 2500, OfferPrice: 1250}, step)

	step, err = c.AcceptSpecialDiscount(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExitStep{Destination: DestinationAccount}, step)

	require.Len(t, api.updates, 2)
	assert.Equal(t, "Too expensive", *api.updates[0].Reason)
	assert.Equal(t, "Too expensive (accepted 50% discount)", *api.updates[1].Reason)
	assert.True(t, *api.updates[1].AcceptedDownsell)
}

func TestSpecialDiscountDeclined(t *testing.T) {
	api := &fakeAPI{variant: "A"}
	c := newController(api)
	ctx := context.Background()

	_, _ = c.Confirm(ctx)
	step, err := c.SubmitReason(ctx, ReasonBetterAlternative)
	require.NoError(t, err)
	assert.Equal(t, StepSpecialDiscount, step.Name())

	step, err = c.DeclineSpecialDiscount()
	require.NoError(t, err)
	assert.Equal(t, CompleteStep{}, step)
	assert.Len(t, api.updates, 1)
}

func TestAbort_NoServerCall(t *testing.T) {
	api := &fakeAPI{variant: "A"}
	c := newController(api)

	step, err := c.Abort()
	require.NoError(t, err)
	assert.Equal(t, ExitStep{Destination: DestinationHome}, step)
	assert.Zero(t, api.creates)

	_, err = c.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestInvalidReason_NoCall(t *testing.T) {
	api := &fakeAPI{variant: "A"}
	c := newController(api)
	ctx := context.Background()
	_, _ = c.Confirm(ctx)

	for _, r := range []string{"", "Bored"} {
		step, err := c.SubmitReason(ctx, r)
		assert.ErrorIs(t, err, ErrInvalidReason)
		assert.Equal(t, StepReason, step.Name())
	}
	assert.Empty(t, api.updates)
	assert.False(t, c.Busy())
}

func TestInvalidAction_LeavesStateUnchanged(t *testing.T) {
	api := &fakeAPI{variant: "A"}
	c := newController(api)
	ctx := context.Background()

	_, err := c.AcceptDownsell(ctx)
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = c.Finish()
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = c.SubmitReason(ctx, ReasonOther)
	assert.ErrorIs(t, err, ErrInvalidAction)

	assert.Equal(t, ConfirmStep{}, c.Step())
	assert.Zero(t, api.creates)
}

func TestFailure_KeepsStepAndReenables(t *testing.T) {
	api := &fakeAPI{variant: "B", err: errors.New("network down")}
	c := newController(api)
	ctx := context.Background()

	step, err := c.Confirm(ctx)
	assert.EqualError(t, err, "network down")
	assert.Equal(t, ConfirmStep{}, step)
	assert.False(t, c.Busy())
	assert.Equal(t, 1, api.creates)

	api.setErr(nil)
	step, err = c.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepDownsell, step.Name())
}

func TestUnknownVariant_IsAFailure(t *testing.T) {
	c := newController(&fakeAPI{variant: "C"})

	_, err := c.Confirm(context.Background())
	assert.Error(t, err)
	assert.Equal(t, ConfirmStep{}, c.Step())
}

func TestBusy_RejectsSecondAction(t *testing.T) {
	api := &fakeAPI{variant: "A", block: make(chan struct{}), entered: make(chan struct{})}
	c := newController(api)

	done := make(chan error, 1)
	go func() {
		_, err := c.Confirm(context.Background())
		done <- err
	}()
	<-api.entered

	assert.True(t, c.Busy())
	_, err := c.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	_, err = c.Abort()
	assert.ErrorIs(t, err, ErrBusy)

	close(api.block)
	require.NoError(t, <-done)
	assert.False(t, c.Busy())
	assert.Equal(t, 1, api.creates)
}

func TestTransitions(t *testing.T) {
	assert.True(t, CanTransition(StepConfirm, StepDownsell))
	assert.True(t, CanTransition(StepReason, StepSpecialDiscount))
	assert.False(t, CanTransition(StepReason, StepExit))
	assert.False(t, CanTransition(StepExit, StepConfirm))
	assert.False(t, CanTransition("unknown", StepExit))
}
