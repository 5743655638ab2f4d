package score

import "github.com/talentforge/forge/internal/model"

// Compensation-fit policy constants. The adjustment is always an absolute
// delta on XS within [-0.08, 0]; compensation fit nudges ranking but never
// filters a candidate out on its own.
const (
	slightlyAboveBand    = 0.10 // up to 10% above budget max
	slightlyAbovePenalty = 0.02
	wayAbovePenalty      = 0.08
)

// AssessCompFit compares the declared salary expectation against the job
// budget band and returns the bounded adjustment descriptor. Missing
// expectation or budget yields status unknown with no adjustment.
func AssessCompFit(salary *model.SalaryExpectation, budget *model.Budget) model.CompFit {
	if salary == nil || salary.Target <= 0 || budget == nil || budget.Max <= 0 {
		return model.CompFit{Status: model.CompUnknown}
	}

	target := salary.Target
	switch {
	case target < budget.Min:
		return model.CompFit{Status: model.CompBelowBudget}
	case target <= budget.Max:
		return model.CompFit{Status: model.CompWithinBudget}
	case target <= budget.Max*(1+slightlyAboveBand):
		return model.CompFit{Status: model.CompSlightlyAbove, Adjustment: -slightlyAbovePenalty}
	default:
		return model.CompFit{Status: model.CompWayAbove, Adjustment: -wayAbovePenalty}
	}
}

// AdjustContext applies the compensation adjustment to an unadjusted XS,
// clamped to [0, 1].
func AdjustContext(xs float64, fit model.CompFit) float64 {
	return clamp01(xs + fit.Adjustment)
}
