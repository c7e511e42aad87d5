package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type Segment string

const (
	Hibernating        Segment = "hibernating"
	AtRisk             Segment = "at_risk"
	CantLoose          Segment = "cant_loose"
	AboutToSleep       Segment = "about_to_sleep"
	NeedAttention      Segment = "need_attention"
	LoyalCustomers     Segment = "loyal_customers"
	Promising          Segment = "promising"
	NewCustomers       Segment = "new_customers"
	PotentialLoyalists Segment = "potential_loyalists"
	Champions          Segment = "champions"
)

// Segments lists every label in rule-table order.
var Segments = []Segment{
	Hibernating, AtRisk, CantLoose, AboutToSleep, NeedAttention,
	LoyalCustomers, Promising, NewCustomers, PotentialLoyalists, Champions,
}

// Customer holds the derived RFM metrics of one customer.
type Customer struct {
	CustomerID string          `json:"customer_id"`
	Recency    int             `json:"recency"`
	Frequency  int             `json:"frequency"`
	Monetary   decimal.Decimal `json:"monetary"`
}

type ScoredCustomer struct {
	Customer
	RecencyScore   int     `json:"recency_score"`
	FrequencyScore int     `json:"frequency_score"`
	Segment        Segment `json:"segment,omitempty"`
}

// Key renders the two-digit recency/frequency score key, e.g. "54".
func (s ScoredCustomer) Key() string {
	return strconv.Itoa(s.RecencyScore) + strconv.Itoa(s.FrequencyScore)
}
