package dto

import (
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
)

// CashFlowResponse defines the API response for the cash flow report.
type CashFlowResponse struct {
	From    string                  `json:"from"`
	To      string                  `json:"to"`
	Bucket  domain.BucketSize       `json:"bucket"`
	Buckets []domain.CashFlowBucket `json:"buckets"`
}

// ProfitResponse defines the API response for the profit/loss report.
type ProfitResponse struct {
	From   string              `json:"from"`
	To     string              `json:"to"`
	Report domain.ProfitReport `json:"report"`
}

// CollectionsResponse defines the API response for the collections report.
type CollectionsResponse struct {
	From   string                   `json:"from"`
	To     string                   `json:"to"`
	Report domain.CollectionsReport `json:"report"`
}

// CustomerAnalysisResponse defines the API response for the customer
// analysis report.
type CustomerAnalysisResponse struct {
	From      string                 `json:"from"`
	To        string                 `json:"to"`
	Customers []domain.CustomerSales `json:"customers"`
}
