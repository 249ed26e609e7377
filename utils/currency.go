package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"netwin-platform/models"
)

// CountryCode maps a dialing code to its country, settlement currency and
// display symbol. Countries without a dedicated currency settle in USD.
type CountryCode struct {
	Code     string
	Country  string
	Currency models.Currency
	Symbol   string
}

var CountryCodes = []CountryCode{
	{Code: "+91", Country: "India", Currency: models.CurrencyINR, Symbol: "₹"},
	{Code: "+234", Country: "Nigeria", Currency: models.CurrencyNGN, Symbol: "₦"},
	{Code: "+1", Country: "USA", Currency: models.CurrencyUSD, Symbol: "$"},
	{Code: "+44", Country: "UK", Currency: models.CurrencyUSD, Symbol: "$"},
	{Code: "+61", Country: "Australia", Currency: models.CurrencyUSD, Symbol: "$"},
	{Code: "+86", Country: "China", Currency: models.CurrencyUSD, Symbol: "$"},
	{Code: "+81", Country: "Japan", Currency: models.CurrencyUSD, Symbol: "$"},
	{Code: "+966", Country: "Saudi Arabia", Currency: models.CurrencyUSD, Symbol: "$"},
	{Code: "+971", Country: "UAE", Currency: models.CurrencyUSD, Symbol: "$"},
	{Code: "+65", Country: "Singapore", Currency: models.CurrencyUSD, Symbol: "$"},
}

// ConversionRates is the fixed exchange-rate table: units per 1 USD.
// Static by design — the platform does not track live rates.
var ConversionRates = map[models.Currency]float64{
	models.CurrencyUSD: 1,
	models.CurrencyINR: 83,
	models.CurrencyNGN: 1300,
}

// MinWithdrawal is the per-currency minimum withdrawal amount.
var MinWithdrawal = map[models.Currency]float64{
	models.CurrencyINR: 100,
	models.CurrencyNGN: 500,
	models.CurrencyUSD: 2,
}

func CurrencyForCountryCode(code string) models.Currency {
	for _, c := range CountryCodes {
		if c.Code == code {
			return c.Currency
		}
	}
	return models.CurrencyUSD
}

func CurrencySymbol(currency models.Currency) string {
	switch currency {
	case models.CurrencyINR:
		return "₹"
	case models.CurrencyNGN:
		return "₦"
	default:
		return "$"
	}
}

func CountryForCode(code string) string {
	for _, c := range CountryCodes {
		if c.Code == code {
			return c.Country
		}
	}
	return "Other"
}

// Convert converts between currencies through USD using the fixed rate
// table, rounded to 2 decimal places.
func Convert(amount float64, from, to models.Currency) float64 {
	if from == to {
		return amount
	}
	inUSD := amount / ConversionRates[from]
	return Round2(inUSD * ConversionRates[to])
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount with its symbol and grouped digits,
// e.g. "₹1,000" or "₹1,000.50".
func FormatCurrency(amount float64, currency models.Currency) string {
	sym := CurrencySymbol(currency)
	if amount == math.Trunc(amount) {
		return printer.Sprintf("%s%d", sym, int64(amount))
	}
	return printer.Sprintf("%s%.2f", sym, amount)
}
