package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errLimitNotNumber = errors.New("limit must be a number")

// Limit accepts a JSON number or a numeric string and truncates it to an int.
// Values beyond int32 saturate so the service reports them as over the maximum.
type Limit int

func (l *Limit) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = 0
		return nil
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			*l = 0
			return nil
		}
		var err error
		if f, err = strconv.ParseFloat(v, 64); err != nil {
			return errLimitNotNumber
		}
	default:
		return errLimitNotNumber
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errLimitNotNumber
	}
	*l = Limit(int(max(min(f, math.MaxInt32), math.MinInt32)))
	return nil
}
