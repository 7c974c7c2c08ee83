package utils

import (
	"regexp"
	"unicode/utf8"
)

const MaxSubscriptionIDLength = 100

var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateUserId reports whether userId has the canonical 8-4-4-4-12 hex UUID shape.
func ValidateUserId(userId string) bool {
	return uuidPattern.MatchString(userId)
}

func ValidateSubscriptionId(subscriptionId string) bool {
	n := utf8.RuneCountInString(subscriptionId)
	return n > 0 && n <= MaxSubscriptionIDLength
}
