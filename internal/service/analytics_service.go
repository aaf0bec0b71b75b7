package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fintrack/backend/internal/model"
)

// Anomaly detection thresholds, percent change month over month.
const (
	spikeThreshold = 30
	dropThreshold  = -30
)

// Anomaly flags a category whose spending moved sharply against the
// previous month.
type Anomaly struct {
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	ChangePercent float64 `json:"changePercent"`
	Message       string  `json:"message"`
}

// GetAnomalies compares per-category expense totals of the given month
// against the previous month. Categories with no spending in the previous
// month are skipped; there is nothing to compare against and the percent
// change would divide by zero.
func (s *FinanceService) GetAnomalies(ctx context.Context, userID, month string) ([]Anomaly, error) {
	currentStart, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	previousStart := currentStart.AddDate(0, -1, 0)

	// The two month windows are independent reads.
	var current, previous MonthlySummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.monthlySummary(gctx, userID, currentStart)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.monthlySummary(gctx, userID, previousStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	anomalies := []Anomaly{}
	for _, row := range sortedCategoryTotals(current.ExpenseByCategory) {
		prevTotal := previous.ExpenseByCategory[row.Category]
		if prevTotal == 0 {
			continue
		}

		changePercent := (row.Total - prevTotal) / prevTotal * 100
		switch {
		case changePercent > spikeThreshold:
			anomalies = append(anomalies, Anomaly{
				Type:          "SPIKE",
				Category:      row.Category,
				ChangePercent: math.Round(changePercent*10) / 10,
				Message:       fmt.Sprintf("%s spending increased by %.1f%% compared to last month.", row.Category, changePercent),
			})
		case changePercent < dropThreshold:
			anomalies = append(anomalies, Anomaly{
				Type:          "DROP",
				Category:      row.Category,
				ChangePercent: math.Round(changePercent*10) / 10,
				Message:       fmt.Sprintf("%s spending decreased significantly compared to last month.", row.Category),
			})
		}
	}
	return anomalies, nil
}

// Spending pace ratio thresholds.
const (
	paceOverThreshold  = 1.15
	paceWatchThreshold = 1.05
	paceAheadThreshold = 0.85
)

// Prediction is a linear projection of month-end spend from spend-to-date.
type Prediction struct {
	Month            string  `json:"month"`
	CurrentExpense   float64 `json:"currentExpense"`
	DailyAverage     float64 `json:"dailyAverage"`
	ProjectedExpense float64 `json:"projectedExpense"`
	DaysElapsed      int     `json:"daysElapsed"`
	DaysInMonth      int     `json:"daysInMonth"`
	DaysRemaining    int     `json:"daysRemaining"`
	PaceStatus       string  `json:"paceStatus"`
	Message          string  `json:"message"`
	Tip              string  `json:"tip"`
}

// GetPrediction projects month-end spending. For the current calendar
// month the elapsed range is clock-aware; past and future months count as
// fully elapsed. The pace ratio compares the projection against the
// expected month spend, taken from the month's total budget when budgets
// exist and from the previous month's spend otherwise.
func (s *FinanceService) GetPrediction(ctx context.Context, userID, month string) (Prediction, error) {
	monthStart, err := parseMonth(month)
	if err != nil {
		return Prediction{}, err
	}

	// Past months are fully elapsed, future months not at all; only the
	// current calendar month is clock-aware.
	days := daysInMonth(monthStart)
	now := s.now()
	elapsed := days
	switch {
	case monthStart.Year() == now.Year() && monthStart.Month() == now.Month():
		elapsed = now.Day()
	case monthStart.After(now):
		elapsed = 0
	}

	summary, err := s.monthlySummary(ctx, userID, monthStart)
	if err != nil {
		return Prediction{}, err
	}

	if elapsed == 0 {
		return Prediction{
			Month:       month,
			DaysInMonth: days,
			PaceStatus:  "no_data",
			Message:     "No spending recorded yet for this month.",
			Tip:         "Add transactions as they happen to keep projections accurate.",
		}, nil
	}

	dailyAverage := summary.TotalExpense / float64(elapsed)
	projected := dailyAverage * float64(days)

	expected, err := s.expectedMonthSpend(ctx, userID, month, monthStart)
	if err != nil {
		return Prediction{}, err
	}

	status, message, tip := classifyPace(projected, expected)

	return Prediction{
		Month:            month,
		CurrentExpense:   summary.TotalExpense,
		DailyAverage:     math.Round(dailyAverage*100) / 100,
		ProjectedExpense: math.Round(projected*100) / 100,
		DaysElapsed:      elapsed,
		DaysInMonth:      days,
		DaysRemaining:    days - elapsed,
		PaceStatus:       status,
		Message:          message,
		Tip:              tip,
	}, nil
}

// expectedMonthSpend returns the baseline against which the projection is
// judged: the sum of the month's budget limits, falling back to the
// previous month's total expense. Zero means no baseline exists.
func (s *FinanceService) expectedMonthSpend(ctx context.Context, userID, month string, monthStart time.Time) (float64, error) {
	budgets, err := s.store.ListBudgets(ctx, userID, month)
	if err != nil {
		return 0, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) > 0 {
		var total float64
		for _, budget := range budgets {
			total += budget.MonthlyLimit
		}
		return total, nil
	}

	previous, err := s.monthlySummary(ctx, userID, monthStart.AddDate(0, -1, 0))
	if err != nil {
		return 0, err
	}
	return previous.TotalExpense, nil
}

// classifyPace maps the projection/expectation ratio onto a pace status
// with a message and an actionable tip.
func classifyPace(projected, expected float64) (status, message, tip string) {
	if expected <= 0 {
		return "on_track", "Not enough history to judge your pace yet.",
			"Set category budgets to get pace warnings."
	}

	ratio := projected / expected
	switch {
	case ratio > paceOverThreshold:
		return "over_budget",
			"Spending trend increasing fast. You are on pace to exceed your usual month.",
			"Reduce discretionary expenses for the rest of the month."
	case ratio > paceWatchThreshold:
		return "watch",
			"Spending pace is slightly above normal. Monitor daily expenses.",
			"Review your largest categories before making new purchases."
	case ratio < paceAheadThreshold:
		return "ahead",
			"Spending pace is below normal. You're ahead of plan.",
			"Consider moving the surplus into savings."
	default:
		return "on_track",
			"Spending pace is stable. You're on track.",
			"Keep logging transactions to stay on top of your budget."
	}
}

// Health score weights and grade bands.
const (
	savingsWeight   = 0.4
	budgetWeight    = 0.3
	stabilityWeight = 0.3
)

// HealthScore is the composite 0-100 financial health metric.
type HealthScore struct {
	Score          int     `json:"score"`
	Grade          string  `json:"grade"`
	Message        string  `json:"message"`
	SavingsScore   int     `json:"savingsScore"`
	BudgetScore    int     `json:"budgetScore"`
	StabilityScore int     `json:"stabilityScore"`
	SavingsRate    float64 `json:"savingsRate"`
	Income         float64 `json:"income"`
	Expense        float64 `json:"expense"`
}

// GetHealthScore blends savings rate, budget adherence and spending
// stability into a single graded score for the month.
func (s *FinanceService) GetHealthScore(ctx context.Context, userID, month string) (HealthScore, error) {
	monthStart, err := parseMonth(month)
	if err != nil {
		return HealthScore{}, err
	}

	summary, err := s.monthlySummary(ctx, userID, monthStart)
	if err != nil {
		return HealthScore{}, err
	}
	alerts, err := s.store.ListAlerts(ctx, userID, month)
	if err != nil {
		return HealthScore{}, fmt.Errorf("failed to list alerts: %w", err)
	}

	savingsScore, savingsRate := scoreSavings(summary.TotalIncome, summary.TotalExpense)
	budgetScore := scoreBudgetAdherence(alerts)
	stabilityScore := scoreStability(summary.ExpenseByCategory)

	score := int(math.Round(float64(savingsScore)*savingsWeight +
		float64(budgetScore)*budgetWeight +
		float64(stabilityScore)*stabilityWeight))
	grade := gradeFor(score)

	return HealthScore{
		Score:          score,
		Grade:          grade,
		Message:        gradeMessage(grade),
		SavingsScore:   savingsScore,
		BudgetScore:    budgetScore,
		StabilityScore: stabilityScore,
		SavingsRate:    math.Round(savingsRate*10) / 10,
		Income:         summary.TotalIncome,
		Expense:        summary.TotalExpense,
	}, nil
}

// scoreSavings is a step function of the savings rate. No income scores
// zero outright.
func scoreSavings(income, expense float64) (score int, savingsRate float64) {
	if income == 0 {
		return 0, 0
	}
	rate := (income - expense) / income
	savingsRate = rate * 100
	switch {
	case rate > 0.30:
		return 100, savingsRate
	case rate > 0.20:
		return 80, savingsRate
	case rate > 0.10:
		return 60, savingsRate
	default:
		return 30, savingsRate
	}
}

// scoreBudgetAdherence starts at 100 and deducts 15 per WARNING and 30 per
// EXCEEDED alert in the month, floored at zero.
func scoreBudgetAdherence(alerts []*model.Alert) int {
	score := 100
	for _, alert := range alerts {
		switch alert.Type {
		case model.StatusWarning:
			score -= 15
		case model.StatusExceeded:
			score -= 30
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// scoreStability is a coarse proxy for spending regularity: 80 when any
// categorized expense activity exists in the month, 60 otherwise.
func scoreStability(expenseByCategory map[string]float64) int {
	if len(expenseByCategory) > 0 {
		return 80
	}
	return 60
}

func gradeFor(score int) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "D"
	}
}

func gradeMessage(grade string) string {
	switch grade {
	case "A":
		return "Excellent financial health. You're managing money well."
	case "B":
		return "Good financial health. A few habits could still improve."
	case "C":
		return "Fair financial health. Watch your budgets and savings rate."
	default:
		return "Poor financial health. Review your spending urgently."
	}
}

// Recommendation is the savings-rate based advice for a month.
type Recommendation struct {
	TotalIncome        float64 `json:"totalIncome"`
	TotalExpense       float64 `json:"totalExpense"`
	Savings            float64 `json:"savings"`
	SavingsRate        float64 `json:"savingsRate"`
	TopExpenseCategory string  `json:"topExpenseCategory"`
	Advice             string  `json:"advice"`
}

// GetRecommendation derives simple spending advice from the month's
// savings rate and dominant expense category.
func (s *FinanceService) GetRecommendation(ctx context.Context, userID, month string) (Recommendation, error) {
	monthStart, err := parseMonth(month)
	if err != nil {
		return Recommendation{}, err
	}

	summary, err := s.monthlySummary(ctx, userID, monthStart)
	if err != nil {
		return Recommendation{}, err
	}

	savings := summary.Balance
	var savingsRate float64
	if summary.TotalIncome > 0 {
		savingsRate = savings / summary.TotalIncome * 100
	}

	top := topCategory(summary.ExpenseByCategory)
	if top == "" {
		top = "No expense data"
	}

	var advice string
	switch {
	case savings < 0:
		advice = "You are spending more than you earn. Immediate cost control required."
	case savingsRate < 20:
		advice = "Your savings rate is low. Consider reducing discretionary expenses."
	case savingsRate < 40:
		advice = "Good savings rate. Try automating investments to grow wealth."
	default:
		advice = "Excellent savings rate. Consider investing the surplus."
	}

	return Recommendation{
		TotalIncome:        summary.TotalIncome,
		TotalExpense:       summary.TotalExpense,
		Savings:            savings,
		SavingsRate:        math.Round(savingsRate*10) / 10,
		TopExpenseCategory: top,
		Advice:             advice,
	}, nil
}
