package types

import "fmt"

// ControlType describes when a control acts relative to a risk event
type ControlType string

const (
	ControlTypePreventive ControlType = "preventive"
	ControlTypeDetective  ControlType = "detective"
	ControlTypeCorrective ControlType = "corrective"
	ControlTypeDirective  ControlType = "directive"
)

// AllControlTypes returns all valid control types
func AllControlTypes() []ControlType {
	return []ControlType{
		ControlTypePreventive,
		ControlTypeDetective,
		ControlTypeCorrective,
		ControlTypeDirective,
	}
}

// IsValid checks if the control type is one of the known tags
func (t ControlType) IsValid() bool {
	switch t {
	case ControlTypePreventive,
		ControlTypeDetective,
		ControlTypeCorrective,
		ControlTypeDirective:
		return true
	default:
		return false
	}
}

// String returns the string representation of the control type
func (t ControlType) String() string {
	return string(t)
}

// ParseControlType parses a string into a ControlType
func ParseControlType(s string) (ControlType, error) {
	t := ControlType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid control type: %s", s)
	}
	return t, nil
}

// ControlCategory describes how a control is implemented
type ControlCategory string

const (
	ControlCategoryPolicy      ControlCategory = "policy"
	ControlCategoryManual      ControlCategory = "manual"
	ControlCategoryAutomated   ControlCategory = "automated"
	ControlCategoryPhysical    ControlCategory = "physical"
	ControlCategorySegregation ControlCategory = "segregation"
	ControlCategoryMonitoring  ControlCategory = "monitoring"
)

// AllControlCategories returns all valid control categories
func AllControlCategories() []ControlCategory {
	return []ControlCategory{
		ControlCategoryPolicy,
		ControlCategoryManual,
		ControlCategoryAutomated,
		ControlCategoryPhysical,
		ControlCategorySegregation,
		ControlCategoryMonitoring,
	}
}

// IsValid checks if the control category is one of the known tags
func (c ControlCategory) IsValid() bool {
	switch c {
	case ControlCategoryPolicy,
		ControlCategoryManual,
		ControlCategoryAutomated,
		ControlCategoryPhysical,
		ControlCategorySegregation,
		ControlCategoryMonitoring:
		return true
	default:
		return false
	}
}

// String returns the string representation of the control category
func (c ControlCategory) String() string {
	return string(c)
}

// ParseControlCategory parses a string into a ControlCategory
func ParseControlCategory(s string) (ControlCategory, error) {
	c := ControlCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid control category: %s", s)
	}
	return c, nil
}

// Effectiveness is the assessed operating effectiveness of a control
type Effectiveness string

const (
	EffectivenessEffective          Effectiveness = "effective"
	EffectivenessPartiallyEffective Effectiveness = "partiallyEffective"
	EffectivenessIneffective        Effectiveness = "ineffective"
)

// IsValid checks if the effectiveness is one of the known tags
func (e Effectiveness) IsValid() bool {
	switch e {
	case EffectivenessEffective,
		EffectivenessPartiallyEffective,
		EffectivenessIneffective:
		return true
	default:
		return false
	}
}

// String returns the string representation of the effectiveness
func (e Effectiveness) String() string {
	return string(e)
}

// ParseEffectiveness parses a string into an Effectiveness
func ParseEffectiveness(s string) (Effectiveness, error) {
	e := Effectiveness(s)
	if !e.IsValid() {
		return "", fmt.Errorf("invalid effectiveness: %s", s)
	}
	return e, nil
}
