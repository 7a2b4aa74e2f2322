package types

import "fmt"

// Treatment is the risk-response strategy chosen for a risk
type Treatment string

const (
	TreatmentMitigate Treatment = "mitigate"
	TreatmentReduce   Treatment = "reduce"
	TreatmentTransfer Treatment = "transfer"
	TreatmentAccept   Treatment = "accept"
	TreatmentAvoid    Treatment = "avoid"
	TreatmentExploit  Treatment = "exploit"
)

// AllTreatments returns all valid treatments
func AllTreatments() []Treatment {
	return []Treatment{
		TreatmentMitigate,
		TreatmentReduce,
		TreatmentTransfer,
		TreatmentAccept,
		TreatmentAvoid,
		TreatmentExploit,
	}
}

// IsValid checks if the treatment is one of the known tags
func (t Treatment) IsValid() bool {
	switch t {
	case TreatmentMitigate,
		TreatmentReduce,
		TreatmentTransfer,
		TreatmentAccept,
		TreatmentAvoid,
		TreatmentExploit:
		return true
	default:
		return false
	}
}

// String returns the string representation of the treatment
func (t Treatment) String() string {
	return string(t)
}

// ParseTreatment parses a string into a Treatment
func ParseTreatment(s string) (Treatment, error) {
	t := Treatment(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid treatment: %s", s)
	}
	return t, nil
}
