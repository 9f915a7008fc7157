package ratio

import "financial-health-engine/internal/models"

// Unit says how a scorecard value should be read.
type Unit string

const (
	UnitPercent  Unit = "percent"
	UnitMultiple Unit = "multiple"
)

// Scorecard is one ratio prepared for display: the raw value plus the static
// guidance text and a healthy/unhealthy verdict against the recommended band.
type Scorecard struct {
	Key            string  `json:"key"`
	Title          string  `json:"title"`
	Value          float64 `json:"value"`
	Unit           Unit    `json:"unit"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
	Improvement    string  `json:"improvement"`
	Healthy        bool    `json:"healthy"`
}

type definition struct {
	key            string
	title          string
	unit           Unit
	description    string
	recommendation string
	improvement    string
	value          func(models.RatioSet) float64
	healthy        func(float64) bool
}

// Recommended bands: savings at least 20%, expenses at most 80% of income,
// leverage at most 50%, solvency at least 50%, debt service at most 40% of
// income, and at least 6 months of expenses covered by liquid assets.
var definitions = []definition{
	{
		key:            "savings",
		title:          "Savings Ratio",
		unit:           UnitPercent,
		description:    "Percentage of income saved after expenses",
		recommendation: "Aim to save at least 20% of your monthly income",
		improvement:    "Automate a transfer to savings on payday before discretionary spending",
		value:          func(r models.RatioSet) float64 { return r.SavingsRatio },
		healthy:        func(v float64) bool { return v >= 20 },
	},
	{
		key:            "expense",
		title:          "Expense Ratio",
		unit:           UnitPercent,
		description:    "Percentage of income spent on expenses",
		recommendation: "Try to keep expenses below 80% of your income",
		improvement:    "Track recurring subscriptions and renegotiate the largest fixed costs",
		value:          func(r models.RatioSet) float64 { return r.ExpenseRatio },
		healthy:        func(v float64) bool { return v <= 80 },
	},
	{
		key:            "leverage",
		title:          "Leverage Ratio",
		unit:           UnitPercent,
		description:    "Measure of assets financed by debt",
		recommendation: "Maintain a leverage ratio below 50%",
		improvement:    "Prepay the highest-interest loan before adding new debt",
		value:          func(r models.RatioSet) float64 { return r.LeverageRatio },
		healthy:        func(v float64) bool { return v <= 50 },
	},
	{
		key:            "solvency",
		title:          "Solvency Ratio",
		unit:           UnitPercent,
		description:    "Ability to meet long-term financial obligations",
		recommendation: "Keep solvency ratio above 50%",
		improvement:    "Grow appreciating assets while holding total loans steady",
		value:          func(r models.RatioSet) float64 { return r.SolvencyRatio },
		healthy:        func(v float64) bool { return v >= 50 },
	},
	{
		key:            "debt",
		title:          "Debt to Income Ratio",
		unit:           UnitPercent,
		description:    "Monthly debt payments relative to monthly income",
		recommendation: "Aim for a debt-to-income ratio below 40%",
		improvement:    "Consolidate EMIs or extend tenures to lower the monthly outflow",
		value:          func(r models.RatioSet) float64 { return r.DebtToIncomeRatio },
		healthy:        func(v float64) bool { return v <= 40 },
	},
	{
		key:            "liquidity",
		title:          "Liquidity Ratio",
		unit:           UnitMultiple,
		description:    "Ability to cover short-term obligations",
		recommendation: "Maintain a liquidity ratio above 6.0",
		improvement:    "Build an emergency fund in instruments you can redeem within days",
		value:          func(r models.RatioSet) float64 { return r.LiquidityRatio },
		healthy:        func(v float64) bool { return v >= 6 },
	},
}

// Scorecards expands a RatioSet into the six display scorecards, in the
// order the dashboard renders them.
func Scorecards(r models.RatioSet) []Scorecard {
	cards := make([]Scorecard, 0, len(definitions))
	for _, d := range definitions {
		v := d.value(r)
		cards = append(cards, Scorecard{
			Key:            d.key,
			Title:          d.title,
			Value:          v,
			Unit:           d.unit,
			Description:    d.description,
			Recommendation: d.recommendation,
			Improvement:    d.improvement,
			Healthy:        d.healthy(v),
		})
	}
	return cards
}
