package wizard

const (
	ReasonTooExpensive      = "Too expensive"
	ReasonNotUsingEnough    = "Not using it enough"
	ReasonBetterAlternative = "Found a better alternative"
	ReasonTechnicalIssues   = "Technical issues"
	ReasonCustomerService   = "Customer service problems"
	ReasonOther             = "Other"
)

// Reasons is the fixed list offered on the reason step, in display order.
var Reasons = []string{
	ReasonTooExpensive,
	ReasonNotUsingEnough,
	ReasonBetterAlternative,
	ReasonTechnicalIssues,
	ReasonCustomerService,
	ReasonOther,
}

func IsValidReason(r string) bool {
	for _, candidate := range Reasons {
		if r == candidate {
			return true
		}
	}
	return false
}

// QualifiesForSpecialDiscount reports whether a reason earns the 50% offer.
func QualifiesForSpecialDiscount(r string) bool {
	return r == ReasonTooExpensive || r == ReasonBetterAlternative
}
