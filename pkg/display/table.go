// Package display renders query results: an aligned text table for instant
// queries, API-shaped JSON for scripting, and ASCII graphs for ranges.
package display

import (
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/common/model"

	"prom-cli/pkg/promapi"
)

// Fixed first and last column titles; the columns between them are the
// sorted union of label names found in the result set.
const (
	metricColumn = "Metric"
	valueColumn  = "Value"
)

// BuildTable computes the table headers and rows for a result set.
//
// Headers are the metric-name column, the lexicographically sorted union of
// all label keys across every record minus the reserved __name__ key, and a
// trailing value column. Rows keep the order results arrived in; a label a
// record lacks renders as the empty string, and the sample value keeps its
// original string form. An empty result set yields the two fixed headers
// and no rows.
func BuildTable(results []promapi.Result) (headers []string, rows [][]string) {
	labelSet := make(map[string]bool)
	for _, r := range results {
		for name := range r.Metric {
			if name != model.MetricNameLabel {
				labelSet[name] = true
			}
		}
	}
	labels := make([]string, 0, len(labelSet))
	for name := range labelSet {
		labels = append(labels, name)
	}
	sort.Strings(labels)

	headers = make([]string, 0, len(labels)+2)
	headers = append(headers, metricColumn)
	headers = append(headers, labels...)
	headers = append(headers, valueColumn)

	rows = make([][]string, 0, len(results))
	for _, r := range results {
		row := make([]string, 0, len(headers))
		row = append(row, r.Name())
		for _, name := range labels {
			row = append(row, r.Metric[name])
		}
		row = append(row, r.Value.Value)
		rows = append(rows, row)
	}
	return headers, rows
}

// RenderTable writes the result set to w as a bordered, column-aligned grid.
func RenderTable(w io.Writer, results []promapi.Result) error {
	headers, rows := BuildTable(results)

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
