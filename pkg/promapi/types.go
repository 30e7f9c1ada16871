package promapi

import (
	"encoding/json"
	"fmt"

	"github.com/prometheus/common/model"
)

// Result is one record of an instant query response: a label set plus a
// single sampled value.
type Result struct {
	Metric map[string]string `json:"metric"`
	Value  SamplePair        `json:"value"`
}

// Name returns the record's reserved metric-name label.
func (r Result) Name() string { return r.Metric[model.MetricNameLabel] }

// RangeResult is one series of a range query response.
type RangeResult struct {
	Metric map[string]string `json:"metric"`
	Values []SamplePair      `json:"values"`
}

// SamplePair is the [timestamp, value] pair the API attaches to every
// sample. The value keeps its original string form; it is never
// reformatted on this side.
type SamplePair struct {
	Timestamp float64
	Value     string
}

func (p *SamplePair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected [timestamp, value] pair, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Timestamp); err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Value); err != nil {
		return fmt.Errorf("invalid sample value: %w", err)
	}
	return nil
}

func (p SamplePair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Timestamp, p.Value})
}

// apiEnvelope is the outer shape every Prometheus API endpoint responds
// with; Data varies by endpoint and is decoded by the caller.
type apiEnvelope struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	ErrorType string          `json:"errorType"`
}
