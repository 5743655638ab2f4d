package model

import (
	"errors"
	"fmt"
	"math"
)

// DefaultTau is the default pass/fail gate threshold on the
// required-skills capability score.
const DefaultTau = 0.4

// SkillRequirement is one skill a job posting asks for. Weights are
// relative importance within the job (0-100); they need not sum to 100 and
// are normalized wherever a proportion is needed.
type SkillRequirement struct {
	Name     string  `json:"name" yaml:"name"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Required bool    `json:"isRequired" yaml:"isRequired"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// Budget is the compensation band configured for the job.
type Budget struct {
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Currency string  `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// ContextWeights configures the aggregation of the four behavioral
// sub-scores. The four weights must sum to 100.
type ContextWeights struct {
	Teamwork      float64 `json:"teamwork" yaml:"teamwork"`
	Communication float64 `json:"communication" yaml:"communication"`
	Adaptability  float64 `json:"adaptability" yaml:"adaptability"`
	Ownership     float64 `json:"ownership" yaml:"ownership"`
}

// DefaultContextWeights weighs the four behavioral dimensions equally.
func DefaultContextWeights() ContextWeights {
	return ContextWeights{Teamwork: 25, Communication: 25, Adaptability: 25, Ownership: 25}
}

// Validate checks the weights are non-negative and sum to 100.
func (w ContextWeights) Validate() error {
	for name, v := range map[string]float64{
		"teamwork":      w.Teamwork,
		"communication": w.Communication,
		"adaptability":  w.Adaptability,
		"ownership":     w.Ownership,
	} {
		if v < 0 {
			return fmt.Errorf("context weight %s is negative", name)
		}
	}
	sum := w.Teamwork + w.Communication + w.Adaptability + w.Ownership
	if math.Abs(sum-100) > 1e-9 {
		return fmt.Errorf("context weights must sum to 100, got %g", sum)
	}
	return nil
}

// JobConfig is the per-batch job configuration the engine scores against.
// It is supplied by the caller and never persisted.
type JobConfig struct {
	RoleTitle      string             `json:"roleTitle,omitempty" yaml:"roleTitle,omitempty"`
	Skills         []SkillRequirement `json:"skills" yaml:"skills"`
	Tau            float64            `json:"tau" yaml:"tau"`
	Budget         *Budget            `json:"budget,omitempty" yaml:"budget,omitempty"`
	ContextWeights ContextWeights     `json:"contextWeights" yaml:"contextWeights"`
}

// Normalize fills defaults for zero-valued fields.
func (j *JobConfig) Normalize() {
	if j.Tau <= 0 {
		j.Tau = DefaultTau
	}
	var zero ContextWeights
	if j.ContextWeights == zero {
		j.ContextWeights = DefaultContextWeights()
	}
}

// Validate checks the invariants of the job configuration: at least one
// skill, all weights non-negative, a sane gate threshold.
func (j *JobConfig) Validate() error {
	if len(j.Skills) == 0 {
		return errors.New("job config requires at least one skill")
	}
	for _, s := range j.Skills {
		if s.Name == "" {
			return errors.New("skill name must not be empty")
		}
		if s.Weight < 0 || s.Weight > 100 {
			return fmt.Errorf("skill %q weight must be in [0, 100], got %g", s.Name, s.Weight)
		}
	}
	if j.Tau <= 0 || j.Tau > 1 {
		return fmt.Errorf("gate threshold must be in (0, 1], got %g", j.Tau)
	}
	if j.Budget != nil && j.Budget.Max > 0 && j.Budget.Min > j.Budget.Max {
		return fmt.Errorf("budget min %g exceeds max %g", j.Budget.Min, j.Budget.Max)
	}
	return j.ContextWeights.Validate()
}
