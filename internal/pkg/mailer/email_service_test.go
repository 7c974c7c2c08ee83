package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfferBody(t *testing.T) {
	body := offerBody(OfferDownsell, 1500)
	assert.Contains(t, body, "$15.00/month")
	assert.Contains(t, body, "Thanks for staying")

	body = offerBody(OfferSpecialDiscount, 1250)
	assert.Contains(t, body, "$12.50/month")
	assert.Contains(t, body, "50% discount")
}
