package main

import "github.com/shopspring/decimal"

// Display-only symbol formatting; no conversion happens anywhere.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"GHS": "GH₵",
	"NGN": "₦",
	"ZAR": "R",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"AUD": "A$",
	"CAD": "C$",
}

func formatAmount(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = "$"
	}
	// EUR places the symbol after the amount
	if currency == "EUR" {
		return amount.StringFixed(2) + symbol
	}
	return symbol + amount.StringFixed(2)
}
