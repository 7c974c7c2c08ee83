package utils

import "fmt"

// FormatPrice renders an amount in cents as dollars, e.g. 2500 -> "$25.00".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// DiscountedPrice subtracts discount from price, floored at zero. Both values are in cents.
func DiscountedPrice(price, discount int64) int64 {
	if price-discount < 0 {
		return 0
	}
	return price - discount
}

// PercentOff returns price reduced by percent, rounding the discount down to whole cents.
func PercentOff(price int64, percent int64) int64 {
	if percent <= 0 {
		return price
	}
	if percent >= 100 {
		return 0
	}
	return price - price*percent/100
}

const (
	// DownsellDiscount is the flat monthly discount, in cents, offered to variant B users.
	DownsellDiscount int64 = 1000
	// SpecialDiscountPercent is offered after a price or competitor related reason.
	SpecialDiscountPercent int64 = 50
	// SpecialDiscountNote is appended to the stored reason when the special discount is taken.
	SpecialDiscountNote = " (accepted 50% discount)"
)

func DownsellPrice(price int64) int64 {
	return DiscountedPrice(price, DownsellDiscount)
}

func SpecialDiscountPrice(price int64) int64 {
	return PercentOff(price, SpecialDiscountPercent)
}
