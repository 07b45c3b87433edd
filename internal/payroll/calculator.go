package payroll

import "github.com/shopspring/decimal"

// Progressive income tax over the part of gross pay above the exemption
// threshold. Each bracket carries a quick deduction so the tax for a taxable
// amount inside the bracket is taxable*rate - deduction in one step.
var (
	taxExemptionThreshold = decimal.NewFromInt(5000)

	taxBrackets = []taxBracket{
		{low: decimal.NewFromInt(0), high: decimal.NewFromInt(3000), rate: decimal.NewFromFloat(0.03), quickDeduction: decimal.NewFromInt(0)},
		{low: decimal.NewFromInt(3000), high: decimal.NewFromInt(12000), rate: decimal.NewFromFloat(0.10), quickDeduction: decimal.NewFromInt(210)},
		{low: decimal.NewFromInt(12000), high: decimal.NewFromInt(25000), rate: decimal.NewFromFloat(0.20), quickDeduction: decimal.NewFromInt(1410)},
		{low: decimal.NewFromInt(25000), high: decimal.NewFromInt(35000), rate: decimal.NewFromFloat(0.25), quickDeduction: decimal.NewFromInt(2660)},
		{low: decimal.NewFromInt(35000), high: decimal.NewFromInt(55000), rate: decimal.NewFromFloat(0.30), quickDeduction: decimal.NewFromInt(4410)},
		{low: decimal.NewFromInt(55000), high: decimal.NewFromInt(80000), rate: decimal.NewFromFloat(0.35), quickDeduction: decimal.NewFromInt(7160)},
		{low: decimal.NewFromInt(80000), high: decimal.Decimal{}, rate: decimal.NewFromFloat(0.45), quickDeduction: decimal.NewFromInt(15160)},
	}

	workingDaysPerMonth = decimal.RequireFromString("21.75")
	workingHoursPerDay  = decimal.NewFromInt(8)
	defaultOvertimeRate = decimal.RequireFromString("1.5")
)

type taxBracket struct {
	low            decimal.Decimal
	high           decimal.Decimal // zero value means unbounded
	rate           decimal.Decimal
	quickDeduction decimal.Decimal
}

func (b taxBracket) contains(taxable decimal.Decimal) bool {
	if taxable.LessThanOrEqual(b.low) {
		return false
	}
	if b.high.IsZero() {
		return true
	}
	return taxable.LessThanOrEqual(b.high)
}

// NetSalaryResult carries the three derived amounts of a pay computation.
// The identity net = gross - tax - deductions holds exactly on the rounded
// values.
type NetSalaryResult struct {
	Gross decimal.Decimal
	Tax   decimal.Decimal
	Net   decimal.Decimal
}

// CalculateTax returns the income tax on gross pay, rounded to cents. Gross
// at or below the exemption threshold is untaxed; brackets apply to the
// excess with a low-exclusive, high-inclusive boundary.
func CalculateTax(gross decimal.Decimal) decimal.Decimal {
	if gross.LessThanOrEqual(taxExemptionThreshold) {
		return decimal.Zero.Round(2)
	}

	taxable := gross.Sub(taxExemptionThreshold)
	for _, bracket := range taxBrackets {
		if bracket.contains(taxable) {
			return taxable.Mul(bracket.rate).Sub(bracket.quickDeduction).Round(2)
		}
	}

	return decimal.Zero.Round(2)
}

// CalculateOvertimePay derives the hourly rate from the monthly basic salary
// over 21.75 working days of 8 hours and applies the overtime multiplier.
func CalculateOvertimePay(basicSalary, hours, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		rate = defaultOvertimeRate
	}
	hourlyRate := basicSalary.Div(workingDaysPerMonth).Div(workingHoursPerDay)
	return hourlyRate.Mul(hours).Mul(rate).Round(2)
}

// CalculateNetSalary composes gross pay, taxes it, and subtracts deductions.
func CalculateNetSalary(basic, allowances, overtimePay, bonus, deductions decimal.Decimal) NetSalaryResult {
	gross := basic.Add(allowances).Add(overtimePay).Add(bonus).Round(2)
	tax := CalculateTax(gross)
	net := gross.Sub(tax).Sub(deductions).Round(2)
	return NetSalaryResult{Gross: gross, Tax: tax, Net: net}
}
