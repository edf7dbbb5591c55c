package chart

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/table"
)

// ValueCounts counts the non-null values of c, most frequent first. Ties keep
// the order in which values first appear.
func ValueCounts(c *table.Column) []Point {
	idx := make(map[string]int)
	var pts []Point
	for _, v := range c.Cells {
		if v == nil {
			continue
		}
		k := table.Key(v)
		i, ok := idx[k]
		if !ok {
			i = len(pts)
			idx[k] = i
			pts = append(pts, Point{X: k})
		}
		pts[i].Y++
	}
	slices.SortStableFunc(pts, func(a, b Point) int { return cmp.Compare(b.Y, a.Y) })
	return pts
}

type group struct {
	key  any
	rows []int
}

// groupRows buckets row indexes by the non-null values of c, ordered by key.
func groupRows(c *table.Column) []group {
	idx := make(map[string]int)
	var groups []group
	for r, v := range c.Cells {
		if v == nil {
			continue
		}
		k := table.Key(v)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, group{key: v})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	slices.SortStableFunc(groups, func(a, b group) int { return compareCells(a.key, b.key) })
	return groups
}

// sumBy sums y per distinct value of x. Null y cells add nothing.
func sumBy(x, y *table.Column) []Point {
	groups := groupRows(x)
	pts := make([]Point, 0, len(groups))
	for _, g := range groups {
		var s float64
		for _, r := range g.rows {
			if f, ok := table.AsFloat(y.Cells[r]); ok {
				s += f
			}
		}
		pts = append(pts, Point{X: table.Key(g.key), Y: s})
	}
	return pts
}

func sumColumn(c *table.Column) float64 {
	var s float64
	for _, v := range c.Cells {
		if f, ok := table.AsFloat(v); ok {
			s += f
		}
	}
	return s
}

// histogram splits the numeric values of c into bins equal-width buckets.
func histogram(c *table.Column, bins int) []Point {
	var vals []float64
	for _, v := range c.Cells {
		if f, ok := table.AsFloat(v); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			vals = append(vals, f)
		}
	}
	if len(vals) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := slices.Min(vals), slices.Max(vals)
	width := (hi - lo) / float64(bins)
	// A range too narrow or too wide for float64 collapses into one bin.
	if width == 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return []Point{{X: fmt.Sprintf("[%g, %g]", lo, hi), Y: float64(len(vals))}}
	}
	counts := make([]float64, bins)
	for _, v := range vals {
		pos := (v - lo) / width
		i := 0
		if !math.IsNaN(pos) && pos > 0 {
			i = int(min(pos, float64(bins-1)))
		}
		counts[i]++
	}
	pts := make([]Point, bins)
	for i := range counts {
		from := lo + float64(i)*width
		closing := ")"
		if i == bins-1 {
			closing = "]"
		}
		pts[i] = Point{X: fmt.Sprintf("[%g, %g%s", from, from+width, closing), Y: counts[i]}
	}
	return pts
}

// timeSeries sums num per instant of date, ascending. Rows null in either
// column are skipped.
func timeSeries(date, num *table.Column) ([]Point, error) {
	type bucket struct {
		at  time.Time
		sum float64
	}
	idx := make(map[int64]int)
	var buckets []bucket
	for r, v := range date.Cells {
		at, ok := v.(time.Time)
		if !ok {
			continue
		}
		f, ok := table.AsFloat(num.Cells[r])
		if !ok {
			continue
		}
		k := at.UnixNano()
		i, seen := idx[k]
		if !seen {
			i = len(buckets)
			idx[k] = i
			buckets = append(buckets, bucket{at: at})
		}
		buckets[i].sum += f
	}
	if len(buckets) == 0 {
		return nil, &AggregationFailure{X: date.Name, Y: num.Name, Err: ErrNoRows}
	}
	slices.SortFunc(buckets, func(a, b bucket) int { return a.at.Compare(b.at) })
	pts := make([]Point, len(buckets))
	for i, b := range buckets {
		pts[i] = Point{X: table.Key(b.at), Y: b.sum}
	}
	return pts, nil
}

func compareCells(a, b any) int {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok && x != y {
			if !x {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(table.Key(a), table.Key(b))
}
