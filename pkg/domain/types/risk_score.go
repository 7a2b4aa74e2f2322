package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RiskScore is an inherent risk value, typically likelihood x impact on a
// 1-5 x 1-5 scale. Values that cannot be read as a finite number are 0.
type RiskScore float64

// ParseRiskScore coerces a loosely typed value (as decoded from TOML or JSON)
// into a RiskScore. It never fails; unusable input yields 0.
func ParseRiskScore(v any) RiskScore {
	switch n := v.(type) {
	case nil:
		return 0
	case RiskScore:
		return finite(float64(n))
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return RiskScore(n)
	case int64:
		return RiskScore(n)
	case int32:
		return RiskScore(n)
	case uint64:
		return RiskScore(n)
	case json.Number:
		return parseScoreString(n.String())
	case string:
		return parseScoreString(n)
	default:
		return 0
	}
}

func parseScoreString(s string) RiskScore {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) RiskScore {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return RiskScore(f)
}

// Float64 returns the score as float64
func (s RiskScore) Float64() float64 {
	return float64(s)
}

// UnmarshalJSON accepts numbers, numeric strings and null. Any other JSON value
// decodes to 0 instead of failing the whole document.
func (s *RiskScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		*s = 0
		return nil
	}
	*s = ParseRiskScore(raw)
	return nil
}
