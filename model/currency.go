package model

import "time"

// ExchangeRate is the SYP-per-USD rate together with when it was fetched.
type ExchangeRate struct {
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ConvertResponse is one converted amount, echoing the rate that was applied.
type ConvertResponse struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Converted float64 `json:"converted"`
	Rate      float64 `json:"rate"`
}
