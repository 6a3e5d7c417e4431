package models

type QuoteRequest struct {
	OriginalPrice *int64  `json:"original_price" validate:"omitempty,gte=0"`
	Discount      float64 `json:"discount" validate:"gte=0"`
	Mode          string  `json:"mode" validate:"omitempty,oneof=amount flat percent percentage"`
	Quantity      int     `json:"quantity" validate:"gte=0,lte=100"`
}

type QuoteResult struct {
	OriginalPrice          *int64 `json:"original_price"`
	FinalPrice             *int64 `json:"final_price"`
	Savings                int64  `json:"savings"`
	Quantity               int    `json:"quantity"`
	OriginalPriceFormatted string `json:"original_price_formatted,omitempty"`
	FinalPriceFormatted    string `json:"final_price_formatted,omitempty"`
	SavingsFormatted       string `json:"savings_formatted"`
}
