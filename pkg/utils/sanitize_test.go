package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "safe text unchanged", input: "Too expensive", want: "Too expensive"},
		{name: "punctuation unchanged", input: "Other: price & support (50%)!", want: "Other: price & support (50%)!"},
		{name: "script tag removed", input: "Too <script>", want: "Too"},
		{name: "paired tags removed", input: "<b>Technical</b> issues", want: "Technical issues"},
		{name: "stray brackets removed", input: "a > b", want: "a  b"},
		{name: "comparison text kept", input: "price < 10 and > 5", want: "price  10 and  5"},
		{name: "closing tag removed", input: "Other</textarea>", want: "Other"},
		{name: "unclosed bracket removed", input: "sub_<001", want: "sub_001"},
		{name: "whitespace trimmed", input: "  Other \n", want: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}

func TestSanitizeInput_Truncates(t *testing.T) {
	long := strings.Repeat("é", MaxInputLength+50)

	got := SanitizeInput(long)

	assert.Equal(t, MaxInputLength, len([]rune(got)))
	assert.NotContains(t, SanitizeInput(strings.Repeat("<", 10)+"x"), "<")
}

func TestValidateUserId(t *testing.T) {
	assert.True(t, ValidateUserId("550e8400-e29b-41d4-a716-446655440001"))
	assert.True(t, ValidateUserId("550E8400-E29B-41D4-A716-446655440001"))
	assert.False(t, ValidateUserId(""))
	assert.False(t, ValidateUserId("user-1"))
	assert.False(t, ValidateUserId("550e8400e29b41d4a716446655440001"))
	assert.False(t, ValidateUserId(" 550e8400-e29b-41d4-a716-446655440001"))
}

func TestValidateSubscriptionId(t *testing.T) {
	assert.True(t, ValidateSubscriptionId("sub_001"))
	assert.True(t, ValidateSubscriptionId(strings.Repeat("s", MaxSubscriptionIDLength)))
	assert.False(t, ValidateSubscriptionId(""))
	assert.False(t, ValidateSubscriptionId(strings.Repeat("s", MaxSubscriptionIDLength+1)))
}

func TestPriceHelpers(t *testing.T) {
	assert.Equal(t, "$25.00", FormatPrice(2500))
	assert.Equal(t, "$12.50", FormatPrice(1250))
	assert.Equal(t, "$0.05", FormatPrice(5))

	assert.Equal(t, int64(1500), DiscountedPrice(2500, 1000))
	assert.Equal(t, int64(0), DiscountedPrice(800, 1000))

	assert.Equal(t, int64(1250), PercentOff(2500, 50))
	assert.Equal(t, int64(1251), PercentOff(2501, 50))
	assert.Equal(t, int64(2500), PercentOff(2500, 0))
}

func TestOfferPrices(t *testing.T) {
	assert.Equal(t, int64(1500), DownsellPrice(2500))
	assert.Equal(t, int64(0), DownsellPrice(900))
	assert.Equal(t, int64(1250), SpecialDiscountPrice(2500))
}
