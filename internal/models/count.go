package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Count is a non-fractional request number. Besides JSON integers it accepts floats
// with no fractional part (5.0) and numeric strings ("5", " 5.0 "), so clients that
// serialise every number as a float or a string are still served.
type Count int64

func (c *Count) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*c = Count(n)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%s is not a valid integer", data)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("%s has a fractional part", data)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("%s is out of range", data)
	}
	*c = Count(f)
	return nil
}
