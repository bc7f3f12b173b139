package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const ruleWidth = 80

// FormatMoney formats a float as an abbreviated currency string
func FormatMoney(amount float64) string {
	if math.IsInf(amount, 1) {
		return "∞"
	}
	if amount >= 1000000 {
		return fmt.Sprintf("£%.2fM", amount/1000000)
	}
	if amount >= 1000 {
		return fmt.Sprintf("£%.0fk", amount/1000)
	}
	return fmt.Sprintf("£%.0f", amount)
}

// FormatMoneyFull formats a float to the penny with thousands separators (£1,234.56)
func FormatMoneyFull(amount float64) string {
	s := decimal.NewFromFloat(amount).Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, pence, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "£" + b.String() + "." + pence
}

// FormatRate formats a fractional rate as a percentage (0.2 -> "20%")
func FormatRate(rate float64) string {
	return decimal.NewFromFloat(rate*100).Round(2).String() + "%"
}

func printBox(title string) {
	inner := ruleWidth - 2
	pad := inner - len([]rune(title))
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	fmt.Println("╔" + strings.Repeat("═", inner) + "╗")
	fmt.Println("║" + strings.Repeat(" ", left) + title + strings.Repeat(" ", pad-left) + "║")
	fmt.Println("╚" + strings.Repeat("═", inner) + "╝")
	fmt.Println()
}

func printSection(title string) {
	fmt.Println(title + ":")
	fmt.Println(strings.Repeat("─", len([]rune(title))+1))
}

func printRow(label string, value string) {
	fmt.Printf("  %-34s %18s\n", label, value)
}

// bandRange describes a band's bounds for display
func bandRange(lower, upper float64) string {
	if math.IsInf(upper, 1) {
		return "over " + FormatMoneyFull(lower)
	}
	return FormatMoneyFull(lower) + " - " + FormatMoneyFull(upper)
}

func printBreakdown(entries []BandBreakdownEntry) {
	fmt.Printf("  %-22s %-34s %6s %12s %12s\n", "Band", "Range", "Rate", "In band", "Charged")
	fmt.Println("  " + strings.Repeat("─", ruleWidth-2))
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %-22s %-34s %6s %12s %12s\n",
			name, bandRange(e.Lower, e.Upper), FormatRate(e.Rate),
			FormatMoneyFull(e.AmountInBand), FormatMoneyFull(e.LeviedInBand))
	}
}

// PrintIncomeTax prints the take-home pay breakdown
func PrintIncomeTax(in IncomeTaxInput, r IncomeTaxResult, taxYear string) {
	printBox("INCOME TAX & TAKE-HOME PAY " + taxYear)

	printSection("Income")
	printRow("Gross salary", FormatMoneyFull(in.GrossSalary))
	if in.OtherIncome > 0 {
		printRow("Other income", FormatMoneyFull(in.OtherIncome))
	}
	if r.AnnualPension > 0 {
		printRow("Pension contributions", FormatMoneyFull(r.AnnualPension))
	}
	printRow("Taxable income", FormatMoneyFull(r.TaxableIncome))
	printRow("Region", in.Region.String())
	fmt.Println()

	printSection("Income tax bands")
	printBreakdown(r.TaxBreakdown)
	fmt.Println()

	printSection("National Insurance bands")
	printBreakdown(r.NIBreakdown)
	fmt.Println()

	printSection("Deductions")
	printRow("Income tax", FormatMoneyFull(r.IncomeTax))
	printRow("National Insurance", FormatMoneyFull(r.NationalInsurance))
	if in.StudentLoanPlan != PlanNone && in.StudentLoanPlan != "" {
		printRow("Student loan ("+string(in.StudentLoanPlan)+")", FormatMoneyFull(r.StudentLoanRepayment))
	}
	printRow("Effective rate (tax + NI)", fmt.Sprintf("%.2f%%", r.EffectiveRate))
	printRow("Marginal income tax rate", FormatRate(r.MarginalRate))
	fmt.Println()

	printSection("Take-home")
	printRow("Net annual", FormatMoneyFull(r.NetAnnual))
	printRow("Net monthly", FormatMoneyFull(r.NetMonthly))
	printRow("Gross monthly", FormatMoneyFull(r.GrossMonthly))
	fmt.Println()
}

// PrintStampDuty prints the SDLT bill for the buyer and the other categories for comparison
func PrintStampDuty(price float64, buyer BuyerCategory, levy BandedLevy, cmp StampDutyComparison, taxYear string) {
	printBox("STAMP DUTY LAND TAX " + taxYear)

	printRow("Purchase price", FormatMoneyFull(price))
	printRow("Buyer", buyer.DisplayName())
	fmt.Println()

	printSection("Bands")
	printBreakdown(levy.Breakdown)
	fmt.Println()

	printRow("Stamp duty payable", FormatMoneyFull(levy.Total))
	if price > 0 {
		printRow("Effective rate", fmt.Sprintf("%.2f%%", levy.Total/price*100))
	}
	fmt.Println()

	printSection("Comparison")
	printRow(StandardBuyer.DisplayName(), FormatMoneyFull(cmp.Standard))
	printRow(FirstTimeBuyer.DisplayName(), FormatMoneyFull(cmp.FirstTimeBuyer))
	printRow(AdditionalProperty.DisplayName(), FormatMoneyFull(cmp.AdditionalProperty))
	if cmp.FirstTimeBuyerSaving > 0 {
		printRow("First-time buyer saving", FormatMoneyFull(cmp.FirstTimeBuyerSaving))
	}
	fmt.Println()
}

// PrintInheritanceTax prints each step of the estate calculation
func PrintInheritanceTax(in InheritanceTaxInput, r InheritanceTaxResult, taxYear string) {
	printBox("INHERITANCE TAX " + taxYear)

	printSection("Estate")
	printRow("Gross estate", FormatMoneyFull(r.GrossEstate))
	printRow("Liabilities", FormatMoneyFull(in.Liabilities))
	printRow("Net estate", FormatMoneyFull(r.NetEstate))
	if r.CharitableDeduction > 0 {
		printRow("Left to charity", FormatMoneyFull(r.CharitableDeduction))
	}
	fmt.Println()

	printSection("Allowances")
	printRow("Marital status", in.MaritalStatus.String())
	printRow("Nil-rate band", FormatMoneyFull(r.NilRateBand))
	printRow("Residence nil-rate band", FormatMoneyFull(r.ResidenceNilRateBand))
	printRow("Total nil-rate band", FormatMoneyFull(r.TotalNilRateBand))
	if r.SpouseExemption > 0 {
		printRow("Spouse exemption", FormatMoneyFull(r.SpouseExemption))
	}
	fmt.Println()

	printSection("Tax")
	printRow("Taxable amount", FormatMoneyFull(r.TaxableAmount))
	rate := FormatRate(r.Rate)
	if r.CharityRateApplied {
		rate += " (charity)"
	}
	printRow("Rate", rate)
	printRow("Inheritance tax due", FormatMoneyFull(r.TaxDue))
	printRow("Beneficiaries receive", FormatMoneyFull(r.BeneficiariesReceive))
	printRow("Effective rate", fmt.Sprintf("%.2f%%", r.EffectiveRate))
	if r.TaxDue > 0 {
		printRow("Saving over 10 years", FormatMoneyFull(r.MonthlySaving)+"/month")
	}
	if in.GiftsInLast7Years > 0 {
		fmt.Println()
		printSection("Gifts in the last 7 years")
		printRow("Gifts", FormatMoneyFull(in.GiftsInLast7Years))
		printRow("Above the nil-rate band", FormatMoneyFull(r.GiftsAboveNilRateBand))
		printRow("Tax on gifts (before taper)", FormatMoneyFull(r.GiftTax))
	}
	fmt.Println()

	printSection("Same estate, other allowances")
	printRow("Single, nil-rate band only", FormatMoneyFull(r.Scenarios.Single))
	printRow("Single with residence band", FormatMoneyFull(r.Scenarios.SingleWithResidence))
	printRow("Widowed with both bands", FormatMoneyFull(r.Scenarios.WidowedWithResidence))
	fmt.Println()
}

// PrintMortgage prints the headline figures and a yearly summary of the schedule
func PrintMortgage(in MortgageInput, r MortgageResult, showSchedule bool) {
	printBox("MORTGAGE")

	printRow("Loan", FormatMoneyFull(in.Principal))
	printRow("Rate", fmt.Sprintf("%.2f%%", in.AnnualRatePercent))
	printRow("Term", fmt.Sprintf("%d years", in.TermYears))
	printRow("Type", in.Type.String())
	fmt.Println()

	printSection("Contractual schedule")
	printAmortization(r.Baseline)

	if r.WithOverpayment != nil {
		printSection("With overpayments")
		if in.MonthlyOverpayment > 0 {
			printRow("Monthly overpayment", FormatMoneyFull(in.MonthlyOverpayment))
		}
		if in.LumpSum > 0 {
			printRow(fmt.Sprintf("Lump sum (end of year %d)", in.LumpSumYear), FormatMoneyFull(in.LumpSum))
		}
		printAmortization(*r.WithOverpayment)
	}

	if s := r.Savings; s != nil {
		printSection("Savings")
		printRow("Interest saved", FormatMoneyFull(s.InterestSaved))
		printRow("Time saved", fmt.Sprintf("%d years %d months", s.YearsSaved, s.RemainderMonthsSaved))
		printRow("New term", fmt.Sprintf("%d months", s.NewTermMonths))
		fmt.Println()
	}

	if showSchedule {
		schedule := r.Baseline
		if r.WithOverpayment != nil {
			schedule = *r.WithOverpayment
		}
		printYearlySchedule(schedule.Schedule)
	}
}

func printAmortization(a AmortizationResult) {
	printRow("Monthly payment", FormatMoneyFull(a.StandardMonthlyPayment))
	printRow("Total interest", FormatMoneyFull(a.TotalInterest))
	printRow("Total paid", FormatMoneyFull(a.TotalPaid))
	printRow("Paid off after", fmt.Sprintf("%d months", a.PayoffMonth))
	if a.PayoffMonth > 0 {
		printRow("Paid off by", PayoffDate(time.Now(), a.PayoffMonth).Format("Jan 2006"))
	}
	fmt.Println()
}

// printYearlySchedule collapses the monthly schedule to one line per year
func printYearlySchedule(schedule []MortgageScheduleEntry) {
	fmt.Printf("%-6s │ %14s %14s %14s │ %16s\n", "Year", "Paid", "Principal", "Interest", "Balance")
	fmt.Println(strings.Repeat("─", ruleWidth))
	for _, y := range SummariseByYear(schedule) {
		fmt.Printf("%-6d │ %14s %14s %14s │ %16s\n", y.Year,
			FormatMoneyFull(y.Paid), FormatMoneyFull(y.Principal), FormatMoneyFull(y.Interest),
			FormatMoneyFull(y.RemainingBalance))
	}
	fmt.Println(strings.Repeat("─", ruleWidth))
	fmt.Println()
}

// PrintGrowth prints the year-by-year projection and its summary
func PrintGrowth(in GrowthInput, points []GrowthPoint, s GrowthSummary) {
	printBox("COMPOUND INTEREST")

	printRow("Initial amount", FormatMoneyFull(in.InitialPrincipal))
	printRow("Contribution per period", FormatMoneyFull(in.PeriodicContribution))
	printRow("Annual rate", fmt.Sprintf("%.2f%%", in.AnnualRatePercent))
	printRow("Years", fmt.Sprintf("%d", in.Years))
	fmt.Println()

	fmt.Printf("%-6s │ %18s %18s %18s\n", "Year", "Balance", "Paid in", "Growth")
	fmt.Println(strings.Repeat("─", ruleWidth))
	for _, p := range points {
		fmt.Printf("%-6d │ %18s %18s %18s\n", p.Year,
			FormatMoneyFull(p.Balance), FormatMoneyFull(p.Contributions), FormatMoneyFull(p.Growth))
	}
	fmt.Println(strings.Repeat("─", ruleWidth))
	fmt.Println()

	printRow("Final balance", FormatMoneyFull(s.FinalBalance))
	printRow("Total contributions", FormatMoneyFull(s.TotalContributions))
	printRow("Interest earned", FormatMoneyFull(s.InterestEarned))
	printRow("Return on contributions", fmt.Sprintf("%.2f%%", s.EffectiveReturn))
	if s.GrowthMultiple > 0 {
		printRow("Growth multiple", fmt.Sprintf("%.2fx", s.GrowthMultiple))
	}
	fmt.Println()
}

// PrintSimpleInterest prints simple interest on a fixed principal
func PrintSimpleInterest(principal, ratePercent, years float64, r SimpleInterestResult) {
	printBox("SIMPLE INTEREST")
	printRow("Principal", FormatMoneyFull(principal))
	printRow("Annual rate", fmt.Sprintf("%.2f%%", ratePercent))
	printRow("Years", fmt.Sprintf("%g", years))
	printRow("Interest", FormatMoneyFull(r.Interest))
	printRow("Final amount", FormatMoneyFull(r.FinalAmount))
	fmt.Println()
}

// PrintTaxYears lists the configured tax years and their headline thresholds
func PrintTaxYears(config *Config, source string) {
	printBox("TAX YEARS")
	fmt.Printf("Schedules loaded from: %s\n\n", source)

	for _, id := range config.TaxYearIDs() {
		ty, err := config.TaxYear(id)
		if err != nil {
			continue
		}
		marker := ""
		if id == config.DefaultTaxYear {
			marker = " (default)"
		}
		printSection(id + marker)
		for _, region := range []Region{RegionEngland, RegionScotland} {
			bands, err := ty.IncomeTaxBands(region)
			if err != nil {
				continue
			}
			labels := make([]string, 0, len(bands))
			for _, b := range bands {
				labels = append(labels, fmt.Sprintf("%s@%s", FormatMoney(b.Lower), FormatRate(b.Rate)))
			}
			printRow("Income tax ("+region.String()+")", "")
			fmt.Println("    " + strings.Join(labels, "  "))
		}
		printRow("SDLT first-time buyer ceiling", FormatMoneyFull(ty.StampDuty.FirstTimeBuyerCeiling))
		printRow("IHT nil-rate band", FormatMoneyFull(ty.InheritanceTax.NilRateBand))
		printRow("IHT residence nil-rate band", FormatMoneyFull(ty.InheritanceTax.ResidenceNilRateBand))
		fmt.Println()
	}
}
