package frame

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DescribeStatistics lists the rows produced by Describe, in order.
var DescribeStatistics = []string{"count", "null_count", "mean", "std", "min", "max", "median"}

// Describe computes summary statistics for every numeric column.
// The result has a "statistic" column followed by one Float64 column per
// numeric input column. Statistics that need more values than available
// are null.
func (f *Frame) Describe() (*Frame, error) {
	labels := make([]any, len(DescribeStatistics))
	for i, s := range DescribeStatistics {
		labels[i] = s
	}
	cols := []*Column{{name: "statistic", dtype: String, values: labels}}

	for _, c := range f.columns {
		if c.dtype != Int64 && c.dtype != Float64 {
			continue
		}
		cols = append(cols, &Column{name: c.name, dtype: Float64, values: describeColumn(c)})
	}
	return New(cols...)
}

func describeColumn(c *Column) []any {
	sample := make([]float64, 0, c.Len())
	for _, v := range c.values {
		switch x := v.(type) {
		case int64:
			sample = append(sample, float64(x))
		case float64:
			sample = append(sample, x)
		}
	}

	out := []any{float64(len(sample)), float64(c.Len() - len(sample)), nil, nil, nil, nil, nil}
	if len(sample) == 0 {
		return out
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	out[2] = stat.Mean(sample, nil)
	if len(sample) > 1 {
		out[3] = stat.StdDev(sample, nil)
	}
	out[4] = floats.Min(sample)
	out[5] = floats.Max(sample)
	out[6] = median(sorted)
	return out
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
