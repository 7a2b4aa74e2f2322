package types

import "fmt"

// RiskCategory is the classification tag recorded on a risk
type RiskCategory string

const (
	RiskCategoryStrategic    RiskCategory = "strategic"
	RiskCategoryFinancial    RiskCategory = "financial"
	RiskCategoryOperational  RiskCategory = "operational"
	RiskCategoryCompliance   RiskCategory = "compliance"
	RiskCategoryTechnology   RiskCategory = "technology"
	RiskCategoryHR           RiskCategory = "hr"
	RiskCategoryHSE          RiskCategory = "hse"
	RiskCategoryReputational RiskCategory = "reputational"
	RiskCategoryProject      RiskCategory = "project"
)

// AllRiskCategories returns all valid risk categories
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryStrategic,
		RiskCategoryFinancial,
		RiskCategoryOperational,
		RiskCategoryCompliance,
		RiskCategoryTechnology,
		RiskCategoryHR,
		RiskCategoryHSE,
		RiskCategoryReputational,
		RiskCategoryProject,
	}
}

// IsValid checks if the risk category is one of the known tags
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskCategoryStrategic,
		RiskCategoryFinancial,
		RiskCategoryOperational,
		RiskCategoryCompliance,
		RiskCategoryTechnology,
		RiskCategoryHR,
		RiskCategoryHSE,
		RiskCategoryReputational,
		RiskCategoryProject:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk category
func (c RiskCategory) String() string {
	return string(c)
}

// ParseRiskCategory parses a string into a RiskCategory
func ParseRiskCategory(s string) (RiskCategory, error) {
	c := RiskCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid risk category: %s", s)
	}
	return c, nil
}
