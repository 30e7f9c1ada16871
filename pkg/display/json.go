package display

import (
	"encoding/json"
	"io"

	"prom-cli/pkg/promapi"
)

// WriteJSON prints the result set in the Prometheus API response shape so
// the output can be piped back into jq or other API consumers.
func WriteJSON(w io.Writer, results []promapi.Result) error {
	type dataJSON struct {
		ResultType string           `json:"resultType"`
		Result     []promapi.Result `json:"result"`
	}
	out := struct {
		Status string   `json:"status"`
		Data   dataJSON `json:"data"`
	}{
		Status: "success",
		Data:   dataJSON{ResultType: "vector", Result: results},
	}
	if out.Data.Result == nil {
		out.Data.Result = []promapi.Result{}
	}
	return json.NewEncoder(w).Encode(out)
}
