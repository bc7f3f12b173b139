package main

import (
	"io"
	"strings"
	"testing"
)

func newSession(answers ...string) *InteractiveSession {
	return NewInteractiveSession(strings.NewReader(strings.Join(answers, "\n")+"\n"), io.Discard)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"250000", 250000},
		{"£250k", 250000},
		{"1.5m", 1500000},
		{"1,250,000", 1250000},
		{" 12.5K ", 12500},
	}
	for _, tc := range tests {
		got, err := parseMoney(tc.input)
		if err != nil || got != tc.expected {
			t.Errorf("parseMoney(%q) = %v, %v; want %v", tc.input, got, err, tc.expected)
		}
	}
	if _, err := parseMoney("lots"); err == nil {
		t.Error("Expected an error for non-numeric input")
	}
}

func TestParseRatePercent(t *testing.T) {
	for input, expected := range map[string]float64{"5.5": 5.5, "5.5%": 5.5, " 4 % ": 4, "4 %": 4, "6.25\t%": 6.25} {
		if got, err := parseRatePercent(input); err != nil || got != expected {
			t.Errorf("parseRatePercent(%q) = %v, %v; want %v", input, got, err, expected)
		}
	}
	if _, err := parseRatePercent("% 4"); err == nil {
		t.Error("Expected an error for a leading percent sign")
	}
}

func TestPromptRate_AcceptsSpaceBeforePercent(t *testing.T) {
	// A rejected first answer would fall through to the second
	if got := newSession("4 %", "7").promptRate("Rate", 5); got != 4 {
		t.Errorf("Expected 4 %% to be accepted first time, got %v", got)
	}
}

func TestValidation(t *testing.T) {
	if validateMoney(-1, "x") == nil || validateMoney(2e9, "x") == nil || validateMoney(100, "x") != nil {
		t.Error("validateMoney bounds wrong")
	}
	if validateRatePercent(101, "x") == nil || validateRatePercent(5.5, "x") != nil {
		t.Error("validateRatePercent bounds wrong")
	}
	if validateYears(0, "x") == nil || validateYears(25, "x") != nil {
		t.Error("validateYears bounds wrong")
	}
}

func TestChooseCalculator(t *testing.T) {
	tests := []struct {
		answers  []string
		expected string
	}{
		{[]string{""}, CalcIncomeTax},
		{[]string{"4"}, CalcMortgage},
		{[]string{"stamp-duty"}, CalcStampDuty},
		{[]string{"9", "abc", "6"}, CalcSimple},
	}
	for _, tc := range tests {
		if got := newSession(tc.answers...).ChooseCalculator(); got != tc.expected {
			t.Errorf("Answers %q chose %s; want %s", tc.answers, got, tc.expected)
		}
	}
}

func TestPromptIncomeTax_Defaults(t *testing.T) {
	in := newSession().PromptIncomeTax()
	expected := IncomeTaxInput{GrossSalary: 50000, Region: RegionEngland, StudentLoanPlan: PlanNone}
	if in != expected {
		t.Errorf("Defaults gave %+v; want %+v", in, expected)
	}
}

func TestPromptIncomeTax_RetriesInvalidAnswers(t *testing.T) {
	in := newSession("-5", "60k", "", "200", "mars", "scotland", "plan2").PromptIncomeTax()

	if in.GrossSalary != 60000 {
		t.Errorf("Expected negative salary to be re-asked, got %.0f", in.GrossSalary)
	}
	if in.MonthlyPensionContribution != 200 || in.Region != RegionScotland || in.StudentLoanPlan != Plan2 {
		t.Errorf("Unexpected input %+v", in)
	}
}

func TestPromptMortgage_FromPriceAndDeposit(t *testing.T) {
	in := newSession("y", "400k", "80k", "5.5%", "25", "", "y", "200", "10k", "5").PromptMortgage()

	expected := MortgageInput{
		Principal:          320000,
		AnnualRatePercent:  5.5,
		TermYears:          25,
		Type:               Repayment,
		MonthlyOverpayment: 200,
		LumpSum:            10000,
		LumpSumYear:        5,
	}
	if in != expected {
		t.Errorf("Got %+v; want %+v", in, expected)
	}
}

func TestPromptMortgage_InterestOnlySkipsOverpayments(t *testing.T) {
	in := newSession("n", "150000", "4", "150", "20", "interest-only").PromptMortgage()

	if in.Type != InterestOnly || in.TermYears != 20 || in.Principal != 150000 {
		t.Errorf("Unexpected input %+v", in)
	}
	if in.HasOverpayments() {
		t.Error("Interest-only loans should not ask for overpayments")
	}
}

func TestPromptInheritanceTax(t *testing.T) {
	in := newSession("400k", "200k", "", "", "", "single", "y", "", "").PromptInheritanceTax()
	r := CalculateInheritanceTax(in, ihtConfig(t))
	assertTaxEquals(t, 40000, r.TaxDue, "Single estate with the home passing to descendants")
}

func TestPromptGrowthAndSimpleInterest(t *testing.T) {
	g := newSession().PromptGrowth()
	if g.Years != 10 || g.PeriodicContribution != 200 || g.PeriodsPerYear != 12 {
		t.Errorf("Unexpected growth defaults %+v", g)
	}

	principal, rate, years := newSession("5000", "3", "4").PromptSimpleInterest()
	r := CalculateSimpleInterest(principal, rate, years)
	assertTaxEquals(t, 600, r.Interest, "5000 × 3% × 4")
}
