package currents

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// KnotsToMPHFactor is the number of statute miles per hour in one knot.
const KnotsToMPHFactor = 1.15078

// KnotsToMPH converts a speed in knots to miles per hour. The speed may be
// any Go number or text holding a decimal number. ok is false when there is
// no usable speed: nil, unparseable or hexadecimal text, other types, NaN or
// infinity.
func KnotsToMPH(knots any) (mph float64, ok bool) {
	var k float64
	switch v := knots.(type) {
	case float64:
		k = v
	case float32:
		k = float64(v)
	case int:
		k = float64(v)
	case int8:
		k = float64(v)
	case int16:
		k = float64(v)
	case int32:
		k = float64(v)
	case int64:
		k = float64(v)
	case uint:
		k = float64(v)
	case uint8:
		k = float64(v)
	case uint16:
		k = float64(v)
	case uint32:
		k = float64(v)
	case uint64:
		k = float64(v)
	case json.Number:
		return KnotsToMPH(string(v))
	case string:
		v = strings.TrimSpace(v)
		if strings.ContainsAny(v, "xX") {
			// no hex floats
			return 0, false
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		k = parsed
	default:
		return 0, false
	}

	mph = k * KnotsToMPHFactor
	if math.IsNaN(mph) || math.IsInf(mph, 0) {
		return 0, false
	}
	return mph, true
}
