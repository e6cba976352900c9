package finance

import (
	"errors"
	"math"

	"autocredit-backend/pkg/money"
)

var ErrInvalidInput = errors.New("invalid amortization input")

type Installment struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayable   float64 `json:"total_payable"`
}

// ComputeInstallment prices a fixed-rate amortizing loan using the standard
// annuity formula. annualRate is a fraction (0.15 = 15%).
func ComputeInstallment(principal, annualRate float64, termMonths int) (Installment, error) {
	if termMonths <= 0 || principal < 0 || annualRate < 0 {
		return Installment{}, ErrInvalidInput
	}

	var monthly float64
	if annualRate == 0 {
		monthly = principal / float64(termMonths)
	} else {
		r := annualRate / 12
		factor := math.Pow(1+r, float64(termMonths))
		monthly = principal * r * factor / (factor - 1)
	}
	monthly = money.Round2(monthly)

	return Installment{
		MonthlyPayment: monthly,
		TotalPayable:   money.Round2(monthly * float64(termMonths)),
	}, nil
}
