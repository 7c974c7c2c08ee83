package wizard

// Step is one screen of the cancel flow. The set of steps is closed.
type Step interface {
	Name() string
	step()
}

const (
	StepConfirm         = "confirm"
	StepDownsell        = "downsell"
	StepReason          = "reason"
	StepSpecialDiscount = "special_discount"
	StepComplete        = "complete"
	StepExit            = "exit"
)

type Destination string

const (
	DestinationHome    Destination = "home"
	DestinationAccount Destination = "account"
)

// ConfirmStep asks whether the user really wants to cancel.
type ConfirmStep struct{}

// DownsellStep offers the variant B discount. Prices are in cents.
type DownsellStep struct {
	CurrentPrice int64
	OfferPrice   int64
}

type ReasonStep struct {
	Options []string
}

// SpecialDiscountStep follows a price or competitor related reason.
type SpecialDiscountStep struct {
	Reason       string
	CurrentPrice int64
	OfferPrice   int64
}

type CompleteStep struct{}

// ExitStep ends the flow; Destination is where the user is sent.
type ExitStep struct {
	Destination Destination
}

func (ConfirmStep) Name() string         { return StepConfirm }
func (DownsellStep) Name() string        { return StepDownsell }
func (ReasonStep) Name() string          { return StepReason }
func (SpecialDiscountStep) Name() string { return StepSpecialDiscount }
func (CompleteStep) Name() string        { return StepComplete }
func (ExitStep) Name() string            { return StepExit }

func (ConfirmStep) step()         {}
func (DownsellStep) step()        {}
func (ReasonStep) step()          {}
func (SpecialDiscountStep) step() {}
func (CompleteStep) step()        {}
func (ExitStep) step()            {}
