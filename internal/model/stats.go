package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Stats are the server-computed aggregates for the currently applied date
// filter. They are authoritative even under pagination, so the client never
// recomputes them from the loaded review list.
type Stats struct {
	TotalSpending int     `json:"totalSpending"`
	AverageRating float64 `json:"averageRating"`
}

// statsWire tolerates the backend emitting aggregates either as JSON
// numbers or as numeric strings (both occur in practice).
type statsWire struct {
	TotalSpending json.RawMessage `json:"totalSpending"`
	AverageRating json.RawMessage `json:"averageRating"`
}

// UnmarshalJSON decodes a stats object accepting both string and numeric
// encodings of each aggregate. Missing or malformed fields decode to zero.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var w statsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.TotalSpending = int(rawNumber(w.TotalSpending))
	s.AverageRating = rawNumber(w.AverageRating)
	return nil
}

// rawNumber extracts a float from a raw JSON value that may be a number,
// a quoted numeric string, or absent.
func rawNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	if raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0
		}
		return f
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}
