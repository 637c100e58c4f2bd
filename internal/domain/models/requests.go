package models

// Requests for public HTTP endpoints. Defined in domain for consistency and reuse.

type GainersRequest struct {
	Limit int `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=100"`
}

// GainerView is the trimmed row served by the gainers route.
type GainerView struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	ChangePercent string `json:"changePercent"`
}
