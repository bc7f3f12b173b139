package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// validateRatePercent checks an annual rate given in percent (0-100)
func validateRatePercent(rate float64, fieldName string) error {
	if rate < 0 || rate > 100 {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("Rate must be between 0%% and 100%% (got %.2f%%)", rate)}
	}
	return nil
}

// validateMoney checks if amount is non-negative and reasonable
func validateMoney(amount float64, fieldName string) error {
	if amount < 0 {
		return ValidationError{Field: fieldName, Message: "Amount cannot be negative"}
	}
	if amount > 1000000000 {
		return ValidationError{Field: fieldName, Message: "Amount seems too large. Please check the value"}
	}
	return nil
}

// validateYears checks a term or horizon in whole years (1-100)
func validateYears(years int, fieldName string) error {
	if years < 1 || years > 100 {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("Years must be between 1 and 100 (got %d)", years)}
	}
	return nil
}

// parseMoney converts "£250k", "1.5m" or "250000" to an amount
func parseMoney(input string) (float64, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	input = strings.TrimPrefix(input, "£")
	input = strings.ReplaceAll(input, ",", "")
	multiplier := 1.0
	if strings.HasSuffix(input, "k") {
		multiplier = 1000
		input = strings.TrimSuffix(input, "k")
	} else if strings.HasSuffix(input, "m") {
		multiplier = 1000000
		input = strings.TrimSuffix(input, "m")
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, err
	}
	return val * multiplier, nil
}

// parseRatePercent converts "5.5%" or "5.5" to 5.5
func parseRatePercent(input string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(input), "%")), 64)
}

func formatMoneyShort(amount float64) string {
	if amount >= 1000000 {
		return fmt.Sprintf("£%.1fm", amount/1000000)
	} else if amount >= 1000 {
		return fmt.Sprintf("£%.0fk", amount/1000)
	}
	return fmt.Sprintf("£%.0f", amount)
}

// InteractiveSession asks for calculator inputs one question at a time.
// Pressing Enter accepts the default shown in brackets.
type InteractiveSession struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewInteractiveSession reads answers from in and writes prompts to out
func NewInteractiveSession(in io.Reader, out io.Writer) *InteractiveSession {
	return &InteractiveSession{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// readLine returns the trimmed answer; at end of input it returns ""
func (s *InteractiveSession) readLine() string {
	input, _ := s.reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// promptString asks for a string with a default value
func (s *InteractiveSession) promptString(prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(s.out, "%s: ", prompt)
	}
	input := s.readLine()
	if input == "" {
		return defaultVal
	}
	return input
}

// promptYesNo asks a y/n question
func (s *InteractiveSession) promptYesNo(prompt string, defaultVal bool) bool {
	def := "n"
	if defaultVal {
		def = "y"
	}
	answer := strings.ToLower(s.promptString(prompt+" (y/n)", def))
	return answer == "y" || answer == "yes"
}

// promptYears asks for a whole number of years with validation
func (s *InteractiveSession) promptYears(prompt string, defaultVal int) int {
	for {
		fmt.Fprintf(s.out, "%s [%d]: ", prompt, defaultVal)
		input := s.readLine()
		if input == "" {
			return defaultVal
		}
		val, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(s.out, "  ✗ Invalid number. Enter whole years, e.g. 25\n")
			continue
		}
		if err := validateYears(val, "years"); err != nil {
			fmt.Fprintf(s.out, "  ✗ %s\n", err.Error())
			continue
		}
		return val
	}
}

// promptRate asks for an annual rate in percent (accepts "5.5%" or "5.5")
func (s *InteractiveSession) promptRate(prompt string, defaultVal float64) float64 {
	for {
		fmt.Fprintf(s.out, "%s [%g%%]: ", prompt, defaultVal)
		input := s.readLine()
		if input == "" {
			return defaultVal
		}
		val, err := parseRatePercent(input)
		if err != nil {
			fmt.Fprintf(s.out, "  ✗ Invalid rate. Enter as '5.5%%' or '5.5'\n")
			continue
		}
		if err := validateRatePercent(val, "rate"); err != nil {
			fmt.Fprintf(s.out, "  ✗ %s\n", err.Error())
			continue
		}
		return val
	}
}

// promptMoney asks for a money amount with validation (accepts "100k" or "100000")
func (s *InteractiveSession) promptMoney(prompt string, defaultVal float64) float64 {
	defaultStr := formatMoneyShort(defaultVal)
	for {
		fmt.Fprintf(s.out, "%s [%s]: ", prompt, defaultStr)
		input := s.readLine()
		if input == "" {
			return defaultVal
		}
		amount, err := parseMoney(input)
		if err != nil {
			fmt.Fprintf(s.out, "  ✗ Invalid amount. Enter as '100k', '1.5m', or '100000'\n")
			continue
		}
		if err := validateMoney(amount, "amount"); err != nil {
			fmt.Fprintf(s.out, "  ✗ %s\n", err.Error())
			continue
		}
		return amount
	}
}

// promptParsed repeats a question until parse accepts the answer
func promptParsed[T any](s *InteractiveSession, prompt, defaultVal string, parse func(string) (T, error)) T {
	for {
		v, err := parse(s.promptString(prompt, defaultVal))
		if err == nil {
			return v
		}
		fmt.Fprintf(s.out, "  ✗ %s\n", err.Error())
	}
}

func (s *InteractiveSession) header(title string) {
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "─── %s ───\n", title)
	fmt.Fprintln(s.out, "Press Enter to accept defaults. For money, enter '100k' or '100000'.")
}

// Calculator names accepted by ChooseCalculator
const (
	CalcIncomeTax      = "income-tax"
	CalcStampDuty      = "stamp-duty"
	CalcInheritanceTax = "inheritance-tax"
	CalcMortgage       = "mortgage"
	CalcCompound       = "compound-interest"
	CalcSimple         = "simple-interest"
)

var calculatorMenu = []struct{ name, label string }{
	{CalcIncomeTax, "Income tax & take-home pay"},
	{CalcStampDuty, "Stamp duty"},
	{CalcInheritanceTax, "Inheritance tax"},
	{CalcMortgage, "Mortgage"},
	{CalcCompound, "Compound interest"},
	{CalcSimple, "Simple interest"},
}

// ChooseCalculator shows the menu and returns the chosen calculator name
func (s *InteractiveSession) ChooseCalculator() string {
	fmt.Fprintln(s.out, "Which calculator?")
	for i, item := range calculatorMenu {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, item.label)
	}
	for {
		choice := s.promptString("Choice", "1")
		if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(calculatorMenu) {
			return calculatorMenu[n-1].name
		}
		for _, item := range calculatorMenu {
			if strings.EqualFold(choice, item.name) {
				return item.name
			}
		}
		fmt.Fprintf(s.out, "  ✗ Enter a number from 1 to %d\n", len(calculatorMenu))
	}
}

// PromptIncomeTax asks for salary, pension, region and student loan plan
func (s *InteractiveSession) PromptIncomeTax() IncomeTaxInput {
	s.header("Income Tax")
	return IncomeTaxInput{
		GrossSalary:                s.promptMoney("  Annual gross salary", 50000),
		OtherIncome:                s.promptMoney("  Other taxable income", 0),
		MonthlyPensionContribution: s.promptMoney("  Monthly pension contribution", 0),
		Region:                     promptParsed(s, "  Region (england/scotland)", "england", ParseRegion),
		StudentLoanPlan:            promptParsed(s, "  Student loan (none/plan1/plan2/plan4/postgrad)", "none", ParseStudentLoanPlan),
	}
}

// PromptStampDuty asks for the price and the buyer category
func (s *InteractiveSession) PromptStampDuty() (float64, BuyerCategory) {
	s.header("Stamp Duty")
	price := s.promptMoney("  Purchase price", 300000)
	buyer := promptParsed(s, "  Buyer (standard/first-time/additional)", "standard", ParseBuyerCategory)
	return price, buyer
}

// PromptInheritanceTax asks for the estate, marital status and reliefs
func (s *InteractiveSession) PromptInheritanceTax() InheritanceTaxInput {
	s.header("Inheritance Tax")
	in := InheritanceTaxInput{
		Property:    s.promptMoney("  Property", 400000),
		Savings:     s.promptMoney("  Savings", 0),
		Investments: s.promptMoney("  Investments", 0),
		OtherAssets: s.promptMoney("  Other assets", 0),
		Liabilities: s.promptMoney("  Debts and liabilities", 0),
	}
	in.MaritalStatus = promptParsed(s, "  Marital status (single/married/widowed)", "single", ParseMaritalStatus)
	if in.Property > 0 {
		in.PassResidenceToDescendants = s.promptYesNo("  Home passes to children or grandchildren?", true)
	}
	in.CharitableDonation = s.promptMoney("  Left to charity", 0)
	in.GiftsInLast7Years = s.promptMoney("  Gifts in the last 7 years", 0)
	return in
}

// PromptMortgage asks for the loan, either directly or as price less deposit,
// then the rate, term, type and any overpayments
func (s *InteractiveSession) PromptMortgage() MortgageInput {
	s.header("Mortgage")
	var in MortgageInput
	if s.promptYesNo("  Work out the loan from price and deposit?", false) {
		price := s.promptMoney("  Property price", 400000)
		deposit := s.promptMoney("  Deposit", 40000)
		var depositPct, ltv float64
		in.Principal, depositPct, ltv = LoanToValue(price, deposit)
		fmt.Fprintf(s.out, "  Loan %s (deposit %.1f%%, LTV %.1f%%)\n", FormatMoneyFull(in.Principal), depositPct, ltv)
	} else {
		in.Principal = s.promptMoney("  Loan amount", 250000)
	}
	in.AnnualRatePercent = s.promptRate("  Annual interest rate", 4.5)
	in.TermYears = s.promptYears("  Term (years)", 25)
	in.Type = promptParsed(s, "  Type (repayment/interest-only)", "repayment", ParseMortgageType)

	if in.Type == Repayment && s.promptYesNo("  Make overpayments?", false) {
		in.MonthlyOverpayment = s.promptMoney("    Monthly overpayment", 100)
		in.LumpSum = s.promptMoney("    One-off lump sum", 0)
		if in.LumpSum > 0 {
			in.LumpSumYear = s.promptYears("    Paid at the end of year", 1)
		}
	}
	return in
}

// PromptGrowth asks for a savings projection
func (s *InteractiveSession) PromptGrowth() GrowthInput {
	s.header("Compound Interest")
	return GrowthInput{
		InitialPrincipal:     s.promptMoney("  Starting amount", 10000),
		PeriodicContribution: s.promptMoney("  Monthly contribution", 200),
		AnnualRatePercent:    s.promptRate("  Annual interest rate", 5),
		Years:                s.promptYears("  Years", 10),
		PeriodsPerYear:       12,
	}
}

// PromptSimpleInterest asks for principal, rate and years
func (s *InteractiveSession) PromptSimpleInterest() (principal, ratePercent, years float64) {
	s.header("Simple Interest")
	principal = s.promptMoney("  Principal", 10000)
	ratePercent = s.promptRate("  Annual interest rate", 5)
	years = float64(s.promptYears("  Years", 1))
	return principal, ratePercent, years
}
