package policy

import "math"

// IntParam returns rules.<ruleID>.params.<key> as an int, or def when cfg is
// nil, the rule or key is absent, or the value is not a positive whole number.
func IntParam(ruleID, key string, def int, cfg *PolicyConfig) int {
	if cfg == nil {
		return def
	}
	v, ok := cfg.Rules[ruleID].Params[key]
	if !ok || !isPositiveWhole(v) {
		return def
	}
	return int(v)
}

func isPositiveWhole(v float64) bool {
	return v > 0 && v == math.Trunc(v) && v <= math.MaxInt32
}
