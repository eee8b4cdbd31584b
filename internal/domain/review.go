package domain

import "time"

// Review represents feedback left by one ride participant about another.
type Review struct {
	ID         string
	RideID     string
	ReviewerID string
	RevieweeID string
	Rating     float64 // 1-5
	Comment    string
	ReviewTime time.Time
}
