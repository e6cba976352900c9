package finance

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

type RiskLevel string

const (
	RiskExcellent RiskLevel = "excellent"
	RiskGood      RiskLevel = "good"
	RiskFair      RiskLevel = "fair"
	RiskPoor      RiskLevel = "poor"
)

type BureauResult struct {
	Score           int       `json:"score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	PaymentHistory  string    `json:"payment_history"`
	OpenAccounts    int       `json:"open_accounts"`
	TotalDebt       float64   `json:"total_debt"`
	RecentInquiries int       `json:"recent_inquiries"`
	CreditAgeYears  int       `json:"credit_age_years"`
	QueriedAt       time.Time `json:"queried_at"`
}

// Bureau is the credit-bureau capability. The simulated implementation below
// can be swapped for a real integration without touching callers.
type Bureau interface {
	Query(ctx context.Context, applicantKey string) (BureauResult, error)
}

// SimulatedBureau derives a stable pseudo credit profile from the applicant
// key, so repeated queries for the same applicant always agree.
type SimulatedBureau struct{}

func NewSimulatedBureau() *SimulatedBureau { return &SimulatedBureau{} }

var _ Bureau = (*SimulatedBureau)(nil)

func (s *SimulatedBureau) Query(_ context.Context, applicantKey string) (BureauResult, error) {
	if strings.TrimSpace(applicantKey) == "" {
		return BureauResult{}, ErrInvalidInput
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(applicantKey))))
	sum := h.Sum64()

	score := 500 + int(sum%500) // [500, 999]
	r := BureauResult{
		Score:           score,
		RiskLevel:       RiskLevelForScore(score),
		OpenAccounts:    1 + int(sum/7%9),
		TotalDebt:       float64(sum/11%50) * 1000,
		RecentInquiries: int(sum / 13 % 5),
		CreditAgeYears:  1 + int(sum/17%20),
		QueriedAt:       time.Now().UTC(),
	}
	r.PaymentHistory = paymentHistorySummary(r.RiskLevel)
	return r, nil
}

func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 800:
		return RiskExcellent
	case score >= 700:
		return RiskGood
	case score >= 600:
		return RiskFair
	default:
		return RiskPoor
	}
}

func paymentHistorySummary(level RiskLevel) string {
	switch level {
	case RiskExcellent:
		return "no late payments on record"
	case RiskGood:
		return "occasional late payment, settled"
	case RiskFair:
		return "several late payments in the last 24 months"
	default:
		return fmt.Sprintf("repeated delinquencies, risk level %s", level)
	}
}
