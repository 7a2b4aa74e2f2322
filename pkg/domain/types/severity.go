package types

// SeverityLevel is the tier assigned to a risk's recorded consequences
type SeverityLevel string

const (
	SeverityCatastrophic SeverityLevel = "catastrophic"
	SeverityMajor        SeverityLevel = "major"
	SeverityModerate     SeverityLevel = "moderate"
	SeverityMinor        SeverityLevel = "minor"
)

func (s SeverityLevel) String() string {
	return string(s)
}

// CauseComplexity is the structural complexity of a risk's recorded causes
type CauseComplexity string

const (
	CauseComplexitySimple   CauseComplexity = "simple"
	CauseComplexityModerate CauseComplexity = "moderate"
	CauseComplexityComplex  CauseComplexity = "complex"
)

func (c CauseComplexity) String() string {
	return string(c)
}
