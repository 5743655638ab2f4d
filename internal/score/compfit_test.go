package score

import (
	"testing"

	"github.com/talentforge/forge/internal/model"
)

func TestAssessCompFit(t *testing.T) {
	budget := &model.Budget{Min: 80000, Max: 100000, Currency: "USD"}

	tests := []struct {
		name       string
		salary     *model.SalaryExpectation
		budget     *model.Budget
		wantStatus model.CompFitStatus
		wantAdjust float64
	}{
		{
			name:       "within budget",
			salary:     &model.SalaryExpectation{Target: 95000},
			budget:     budget,
			wantStatus: model.CompWithinBudget,
		},
		{
			name:       "exactly at max",
			salary:     &model.SalaryExpectation{Target: 100000},
			budget:     budget,
			wantStatus: model.CompWithinBudget,
		},
		{
			name:       "below budget",
			salary:     &model.SalaryExpectation{Target: 70000},
			budget:     budget,
			wantStatus: model.CompBelowBudget,
		},
		{
			name:       "slightly above",
			salary:     &model.SalaryExpectation{Target: 108000},
			budget:     budget,
			wantStatus: model.CompSlightlyAbove,
			wantAdjust: -0.02,
		},
		{
			name:       "way above",
			salary:     &model.SalaryExpectation{Target: 150000},
			budget:     budget,
			wantStatus: model.CompWayAbove,
			wantAdjust: -0.08,
		},
		{
			name:       "no expectation",
			salary:     nil,
			budget:     budget,
			wantStatus: model.CompUnknown,
		},
		{
			name:       "no budget",
			salary:     &model.SalaryExpectation{Target: 95000},
			budget:     nil,
			wantStatus: model.CompUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit := AssessCompFit(tt.salary, tt.budget)
			if fit.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", fit.Status, tt.wantStatus)
			}
			if fit.Adjustment != tt.wantAdjust {
				t.Errorf("adjustment = %g, want %g", fit.Adjustment, tt.wantAdjust)
			}
			if fit.Adjustment < -wayAbovePenalty || fit.Adjustment > 0 {
				t.Errorf("adjustment %g outside [-%g, 0]", fit.Adjustment, wayAbovePenalty)
			}
		})
	}
}

func TestAdjustContext_Clamped(t *testing.T) {
	fit := model.CompFit{Status: model.CompWayAbove, Adjustment: -wayAbovePenalty}
	if got := AdjustContext(0.03, fit); got != 0 {
		t.Errorf("adjusted XS below zero must clamp, got %g", got)
	}
	if got := AdjustContext(0.5, fit); got != 0.42 {
		t.Errorf("AdjustContext(0.5, way_above) = %g, want 0.42", got)
	}
	if got := AdjustContext(0.5, model.CompFit{Status: model.CompWithinBudget}); got != 0.5 {
		t.Errorf("within budget must not move XS, got %g", got)
	}
}
