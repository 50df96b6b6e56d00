package effectchain

import "math"

// Params holds the parsed parameters for a single chain node, as handed
// over by a configuration loader.
type Params struct {
	Name     string
	Type     string
	Bypassed bool
	Num      map[string]float64
	Vec      map[string][]float64
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// HasNum reports whether a finite numeric parameter is present.
func (p Params) HasNum(key string) bool {
	if p.Num == nil {
		return false
	}

	v, ok := p.Num[key]

	return ok && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// GetVec extracts a vector parameter, or nil if missing.
func (p Params) GetVec(key string) []float64 {
	if p.Vec == nil {
		return nil
	}

	return p.Vec[key]
}

// HasVec reports whether a non-empty vector parameter is present.
func (p Params) HasVec(key string) bool {
	return len(p.GetVec(key)) > 0
}
