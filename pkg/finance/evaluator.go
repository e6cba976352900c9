package finance

import (
	"math"
	"time"

	"autocredit-backend/pkg/money"
)

const (
	baseAnnualRate   = 0.15
	minApprovalScore = 600
	maxDebtRatio     = 0.5
	// approved capacity must cover this share of the requested monthly slice
	capacityCushion = 0.4
)

type Profile struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	OtherIncome     float64 `json:"other_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	CurrentDebts    float64 `json:"current_debts"`
}

// PaymentCapacity is the disposable monthly income after expenses and debts.
func (p Profile) PaymentCapacity() float64 {
	return money.Round2(p.MonthlyIncome + p.OtherIncome - p.MonthlyExpenses - p.CurrentDebts)
}

type Evaluation struct {
	Approved         bool      `json:"approved"`
	ApprovedAmount   float64   `json:"approved_amount"`
	AnnualRate       float64   `json:"annual_rate"`
	MonthlyPayment   float64   `json:"monthly_payment"`
	TermMonths       int       `json:"term_months"`
	DebtRatio        float64   `json:"debt_ratio"`
	Conditions       []string  `json:"conditions,omitempty"`
	RejectionReasons []string  `json:"rejection_reasons,omitempty"`
	Suggestions      []string  `json:"suggestions,omitempty"`
	EvaluatedAt      time.Time `json:"evaluated_at"`
}

// Evaluate decides a financing request from the applicant's financial profile
// and bureau result. It is pure: callers apply the outcome to the purchase.
func Evaluate(profile Profile, bureau BureauResult, requestedAmount float64, termMonths int) (Evaluation, error) {
	if requestedAmount <= 0 || termMonths <= 0 {
		return Evaluation{}, ErrInvalidInput
	}

	monthlySlice := requestedAmount / float64(termMonths)
	totalIncome := profile.MonthlyIncome + profile.OtherIncome
	capacity := profile.PaymentCapacity()

	var debtRatio float64
	if totalIncome > 0 {
		debtRatio = (profile.CurrentDebts + monthlySlice) / totalIncome
	} else {
		debtRatio = 1
	}

	ev := Evaluation{
		TermMonths:  termMonths,
		DebtRatio:   debtRatio,
		EvaluatedAt: time.Now().UTC(),
	}

	var reasons, suggestions []string
	if bureau.Score <= minApprovalScore {
		reasons = append(reasons, "credit score below the minimum required")
		suggestions = append(suggestions, "improve payment history before reapplying")
	}
	if capacity <= capacityCushion*monthlySlice {
		reasons = append(reasons, "insufficient payment capacity for the requested amount")
		suggestions = append(suggestions, "increase the down payment or extend the term")
	}
	if debtRatio >= maxDebtRatio {
		reasons = append(reasons, "debt ratio exceeds the allowed maximum")
		suggestions = append(suggestions, "reduce existing debts before reapplying")
	}
	if len(reasons) > 0 {
		ev.RejectionReasons = reasons
		ev.Suggestions = suggestions
		return ev, nil
	}

	rate := riskAdjustedRate(bureau.Score, termMonths)
	inst, err := ComputeInstallment(requestedAmount, rate, termMonths)
	if err != nil {
		return Evaluation{}, err
	}

	ev.Approved = true
	ev.ApprovedAmount = money.Round2(requestedAmount)
	ev.AnnualRate = rate
	ev.MonthlyPayment = inst.MonthlyPayment
	ev.Conditions = []string{
		"fixed rate for the full term",
		"monthly direct-debit payments",
		"vehicle held as collateral until settled",
	}
	return ev, nil
}

// riskAdjustedRate starts from the base rate, rewarding higher score bands
// and penalizing longer terms.
func riskAdjustedRate(score, termMonths int) float64 {
	rate := baseAnnualRate
	switch {
	case score >= 800:
		rate -= 0.05
	case score >= 750:
		rate -= 0.03
	case score >= 700:
		rate -= 0.02
	case score >= 650:
		rate -= 0.01
	}
	switch {
	case termMonths > 60:
		rate += 0.02
	case termMonths > 48:
		rate += 0.01
	}
	// keep the rate exact to 4 decimals against float drift from the steps
	return math.Round(rate*10000) / 10000
}
