package wizard

// AllowedTransitions lists, per step, the steps the flow may move to next.
var AllowedTransitions = map[string][]string{
	StepConfirm: {
		StepReason,
		StepDownsell,
		StepExit,
	},
	StepDownsell: {
		StepReason,
		StepExit,
	},
	StepReason: {
		StepSpecialDiscount,
		StepComplete,
	},
	StepSpecialDiscount: {
		StepComplete,
		StepExit,
	},
	StepComplete: {
		StepExit,
	},
	StepExit: {}, // Terminal
}

// CanTransition checks if moving from one step to another is allowed.
func CanTransition(from, to string) bool {
	allowed, exists := AllowedTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
