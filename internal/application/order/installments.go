package order

import (
	"github.com/lewisgroup/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
)

const (
	maxInstallmentMonths     = 12
	defaultInstallmentMonths = 12
)

// BuildInstallmentSchedule amortizes the order total over up to a year of
// equal monthly payments. Months outside [1,12] are clamped; zero selects
// the default term. The per-month payment follows the standard annuity
// formula at annualRate/12 per month, rounded to two decimal places.
func BuildInstallmentSchedule(o *order.Order, months int, annualRate float64) InstallmentSchedule {
	if months <= 0 {
		months = defaultInstallmentMonths
	}
	if months > maxInstallmentMonths {
		months = maxInstallmentMonths
	}

	principal := decimal.NewFromInt(o.Total()).Div(decimal.NewFromInt(100))
	rate := decimal.NewFromFloat(annualRate)
	monthlyRate := rate.Div(decimal.NewFromInt(12))

	var payment decimal.Decimal
	if monthlyRate.IsZero() {
		payment = principal.Div(decimal.NewFromInt(int64(months))).Round(2)
	} else {
		// payment = P * r / (1 - (1+r)^-months)
		one := decimal.NewFromInt(1)
		compound := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
		payment = principal.Mul(monthlyRate).Div(one.Sub(one.Div(compound))).Round(2)
	}

	schedule := InstallmentSchedule{
		OrderID:        o.ID,
		Months:         months,
		AnnualRate:     rate,
		Principal:      principal,
		MonthlyPayment: payment,
		Lines:          make([]InstallmentLine, 0, months),
	}

	balance := principal
	for month := 1; month <= months; month++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)
		linePayment := payment
		if month == months {
			// Final payment absorbs rounding drift so the balance closes at zero
			principalPart = balance
			linePayment = balance.Add(interest)
		}
		balance = balance.Sub(principalPart)

		schedule.Lines = append(schedule.Lines, InstallmentLine{
			Month:     month,
			Payment:   linePayment.Round(2),
			Principal: principalPart.Round(2),
			Interest:  interest,
			Balance:   balance.Round(2),
		})
	}

	schedule.TotalPayable = decimal.Zero
	for _, line := range schedule.Lines {
		schedule.TotalPayable = schedule.TotalPayable.Add(line.Payment)
	}
	schedule.TotalPayable = schedule.TotalPayable.Round(2)
	return schedule
}
