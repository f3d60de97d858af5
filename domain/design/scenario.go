package design

import "fmt"

// Scenario maps each dose level to the factor applied to the control mean
// (effect) and to the control standard deviation (variance). Dose 0 is the
// unperturbed reference group and must map to 1.0 on both axes.
type Scenario struct {
	Label               string
	EffectMultipliers   map[int]float64
	VarianceMultipliers map[int]float64
}

// Validate checks that every dose level that will be generated has both
// multipliers, that they are positive, and that the control mapping is the
// identity. An unmapped dose level is a hard configuration error, never a
// fallback value.
func (s Scenario) Validate(doseLevels []int) error {
	for _, dose := range doseLevels {
		effect, ok := s.EffectMultipliers[dose]
		if !ok {
			return NewMissingDoseMappingError(s.Label, dose)
		}
		variance, ok := s.VarianceMultipliers[dose]
		if !ok {
			return NewMissingDoseMappingError(s.Label, dose)
		}
		if effect <= 0 {
			return fmt.Errorf("%w: scenario %q, dose %d effect %g", ErrInvalidMultiplier, s.Label, dose, effect)
		}
		if variance <= 0 {
			return fmt.Errorf("%w: scenario %q, dose %d variance %g", ErrInvalidMultiplier, s.Label, dose, variance)
		}
		if dose == 0 && (effect != 1.0 || variance != 1.0) {
			return fmt.Errorf("%w: scenario %q has effect %g, variance %g at dose 0",
				ErrControlNotIdentity, s.Label, effect, variance)
		}
	}
	return nil
}

// MultipliersFor returns the effect and variance factors for one dose level.
// The control group always gets the identity pair regardless of scenario
// contents; the null hypothesis's reference group is never perturbed.
func (s Scenario) MultipliersFor(dose int) (effect, variance float64, err error) {
	if dose == 0 {
		return 1.0, 1.0, nil
	}
	effect, ok := s.EffectMultipliers[dose]
	if !ok {
		return 0, 0, NewMissingDoseMappingError(s.Label, dose)
	}
	variance, ok = s.VarianceMultipliers[dose]
	if !ok {
		return 0, 0, NewMissingDoseMappingError(s.Label, dose)
	}
	return effect, variance, nil
}

// LinearScenario builds the modeled scenario: effect size interpolated
// linearly from no effect at control to topEffect at the highest dose, and
// the standard-deviation multiplier inflated linearly from 1.0 at control to
// topVariance at the highest dose. doseLevels must be ordered with the
// control at index 0.
func LinearScenario(label string, doseLevels []int, topEffect, topVariance float64) Scenario {
	s := Scenario{
		Label:               label,
		EffectMultipliers:   make(map[int]float64, len(doseLevels)),
		VarianceMultipliers: make(map[int]float64, len(doseLevels)),
	}
	top := len(doseLevels) - 1
	for i, dose := range doseLevels {
		if i == 0 {
			s.EffectMultipliers[dose] = 1.0
			s.VarianceMultipliers[dose] = 1.0
			continue
		}
		frac := float64(i) / float64(top)
		s.EffectMultipliers[dose] = 1.0 + frac*(topEffect-1.0)
		s.VarianceMultipliers[dose] = 1.0 + frac*(topVariance-1.0)
	}
	return s
}
