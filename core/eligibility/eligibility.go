// Package eligibility decides whether a carrier may quote a shipment.
//
// Carriers author weight and dimension rules; all enabled rules whose
// scoping matches the shipment are AND-ed. A carrier with zero rules
// admits unconditionally (open-world default).
package eligibility

import (
	"fmt"
	"strings"

	"freight-rate/core/types"
)

// Violation records one rule the shipment broke.
type Violation struct {
	// Rule is the violated rule as authored
	Rule types.EligibilityRule

	// Measured is the shipment value the bound was checked against
	Measured float64

	// Reason is a human-readable explanation
	Reason string
}

// Decision is the outcome of an eligibility evaluation. All violated
// rules are collected for diagnostics; the first one supplies the
// headline rejection reason.
type Decision struct {
	Admitted   bool
	Violations []Violation
}

// Reason returns the headline rejection reason, or "" when admitted.
func (d Decision) Reason() string {
	if d.Admitted || len(d.Violations) == 0 {
		return ""
	}
	return d.Violations[0].Reason
}

// Measurements are the shipment values rules are checked against.
// Dimension bounds apply per package; the largest value on the
// shipment is what a max rule sees, the smallest what a min rule sees.
type Measurements struct {
	ChargeableWeight float64
	MaxLength        float64
	MaxWidth         float64
	MaxHeight        float64
	MinLength        float64
	MinWidth         float64
	MinHeight        float64
}

// Measure derives rule measurements from a shipment and its weight
// result.
func Measure(s types.Shipment, w types.WeightResult) Measurements {
	m := Measurements{ChargeableWeight: w.ChargeableWeight}
	for i, p := range s.Packages {
		if i == 0 {
			m.MinLength, m.MinWidth, m.MinHeight = p.Length, p.Width, p.Height
		}
		m.MaxLength = maxf(m.MaxLength, p.Length)
		m.MaxWidth = maxf(m.MaxWidth, p.Width)
		m.MaxHeight = maxf(m.MaxHeight, p.Height)
		m.MinLength = minf(m.MinLength, p.Length)
		m.MinWidth = minf(m.MinWidth, p.Width)
		m.MinHeight = minf(m.MinHeight, p.Height)
	}
	return m
}

// Evaluate checks every enabled, scope-matching rule against the
// shipment and collects all violations.
func Evaluate(s types.Shipment, m Measurements, rules []types.EligibilityRule) Decision {
	decision := Decision{Admitted: true}

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if !rule.AppliesTo(s) {
			continue
		}

		measured, ok := measuredValue(rule.Restriction, m)
		if !ok {
			continue
		}

		if violates(rule, measured) {
			decision.Admitted = false
			decision.Violations = append(decision.Violations, Violation{
				Rule:     rule,
				Measured: measured,
				Reason:   violationReason(rule, measured),
			})
		}
	}

	return decision
}

// violates applies the rule's polarity. Without Exclude the bound
// defines an allowed range and values outside it reject; with Exclude
// the bounded range is forbidden and values inside it reject.
func violates(rule types.EligibilityRule, measured float64) bool {
	var within bool
	if rule.Restriction.IsMin() {
		within = measured >= rule.Bound
	} else {
		within = measured <= rule.Bound
	}
	if rule.Exclude {
		return within
	}
	return !within
}

func measuredValue(r types.RestrictionType, m Measurements) (float64, bool) {
	switch r {
	case types.RestrictMinWeight, types.RestrictMaxWeight:
		return m.ChargeableWeight, true
	case types.RestrictMaxLength:
		return m.MaxLength, true
	case types.RestrictMaxWidth:
		return m.MaxWidth, true
	case types.RestrictMaxHeight:
		return m.MaxHeight, true
	case types.RestrictMinLength:
		return m.MinLength, true
	case types.RestrictMinWidth:
		return m.MinWidth, true
	case types.RestrictMinHeight:
		return m.MinHeight, true
	default:
		// Unknown restriction types are skipped rather than failing
		// the whole evaluation.
		return 0, false
	}
}

func violationReason(rule types.EligibilityRule, measured float64) string {
	name := strings.ReplaceAll(string(rule.Restriction), "_", " ")
	unit := rule.Unit
	if unit != "" {
		unit = " " + unit
	}
	if rule.Exclude {
		return fmt.Sprintf("%s %.2f%s falls in excluded range (bound %.2f%s)", name, measured, unit, rule.Bound, unit)
	}
	if rule.Restriction.IsMin() {
		return fmt.Sprintf("%s %.2f%s below minimum %.2f%s", name, measured, unit, rule.Bound, unit)
	}
	return fmt.Sprintf("%s %.2f%s exceeds maximum %.2f%s", name, measured, unit, rule.Bound, unit)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
