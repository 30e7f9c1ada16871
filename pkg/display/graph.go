package display

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/common/model"

	"prom-cli/pkg/promapi"
)

const (
	graphWidth  = 80
	graphHeight = 10
)

// RenderGraph plots one ASCII graph per series of a range query result.
// Points whose value does not parse as a finite float are skipped.
func RenderGraph(w io.Writer, results []promapi.RangeResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No data found for the given range.")
		return
	}

	for _, series := range results {
		data := make([]float64, 0, len(series.Values))
		for _, p := range series.Values {
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			data = append(data, v)
		}
		if len(data) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s\n", seriesTitle(series.Metric))
		fmt.Fprintln(w, asciigraph.Plot(data,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth)))
		if n := len(series.Values); n > 1 {
			from := time.Unix(int64(series.Values[0].Timestamp), 0).UTC()
			to := time.Unix(int64(series.Values[n-1].Timestamp), 0).UTC()
			fmt.Fprintf(w, "  %s .. %s\n", from.Format(time.RFC3339), to.Format(time.RFC3339))
		}
	}
}

// seriesTitle renders a label set as name{k="v", ...} with the reserved
// metric-name key pulled out front.
func seriesTitle(metric map[string]string) string {
	keys := make([]string, 0, len(metric))
	for k := range metric {
		if k != model.MetricNameLabel {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(metric[model.MetricNameLabel])
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%q", k, metric[k])
	}
	b.WriteString("}")
	return b.String()
}
