package model

import "fmt"

// FormatPrice renders price with two decimals, prefixed by currency when set.
func FormatPrice(currency string, price float64) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%s %.2f", currency, price)
}
