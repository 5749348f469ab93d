package forecaster

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Params is a named hyperparameter set. Keys match the hyperparameter names
// of the estimator that produced them.
type Params map[string]any

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Int returns the integer stored under key, or def when the key is absent.
// Integral float64 values are accepted since YAML and JSON decoders produce them.
// Values that do not fit in an int are rejected with ErrParam.
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
		return 0, outOfRange(key, v)
	case uint:
		if n <= math.MaxInt {
			return int(n), nil
		}
		return 0, outOfRange(key, v)
	case uint64:
		if n <= math.MaxInt {
			return int(n), nil
		}
		return 0, outOfRange(key, v)
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			break
		}
		// -MinInt is a power of two and exactly representable; MaxInt is not.
		if n >= float64(math.MinInt) && n < -float64(math.MinInt) {
			return int(n), nil
		}
		return 0, outOfRange(key, v)
	}
	return 0, fmt.Errorf("%w: %q must be an integer, got %v (%T)", ErrParam, key, v, v)
}

func outOfRange(key string, v any) error {
	return fmt.Errorf("%w: %q is out of range for an integer, got %v", ErrParam, key, v)
}

// Bool returns the boolean stored under key, or def when the key is absent.
func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q must be a boolean, got %v (%T)", ErrParam, key, v, v)
	}
	return b, nil
}

// CheckKeys returns an error naming the first key of p not in allowed.
func (p Params) CheckKeys(allowed ...string) error {
	for _, k := range p.Keys() {
		if !slices.Contains(allowed, k) {
			return fmt.Errorf("%w: unknown hyperparameter %q (allowed: %v)", ErrParam, k, allowed)
		}
	}
	return nil
}
