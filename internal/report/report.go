// Package report is the single home of the summary computation every module
// page used to duplicate: filter a collection by a date window, reduce to
// count/total/average.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Period selects a reporting window relative to "now"
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodThisWeek  Period = "this-week"
	PeriodThisMonth Period = "this-month"
	PeriodLastMonth Period = "last-month"
	PeriodCustom    Period = "custom"
)

// ParsePeriod validates a user-supplied period string
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodToday, PeriodYesterday, PeriodThisWeek, PeriodThisMonth, PeriodLastMonth, PeriodCustom:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Window is a half-open time range [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Resolve maps a relative period to a concrete window. Weeks start Monday.
// PeriodCustom has no implicit bounds; use CustomWindow instead.
func Resolve(p Period, now time.Time) (Window, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodToday:
		return Window{Start: day, End: day.AddDate(0, 0, 1)}, nil
	case PeriodYesterday:
		return Window{Start: day.AddDate(0, 0, -1), End: day}, nil
	case PeriodThisWeek:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday belongs to the week that started the previous Monday
		}
		start := day.AddDate(0, 0, -(weekday - 1))
		return Window{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case PeriodLastMonth:
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: end.AddDate(0, -1, 0), End: end}, nil
	case PeriodCustom:
		return Window{}, fmt.Errorf("custom period requires an explicit window")
	}
	return Window{}, fmt.Errorf("unknown period %q", p)
}

// CustomWindow builds an explicit [start, end) window
func CustomWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// Summary is the shape every report reduces to
type Summary struct {
	Count        int             `json:"count"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Average      decimal.Decimal `json:"average"`
}

// Aggregate filters records whose date falls in the window and reduces them.
// An empty window yields a zero Summary; Average is never a division by zero.
func Aggregate[T any](records []T, date func(T) time.Time, amount func(T) decimal.Decimal, w Window) Summary {
	s := Summary{TotalRevenue: decimal.Zero, Average: decimal.Zero}
	for _, r := range records {
		if !w.Contains(date(r)) {
			continue
		}
		s.Count++
		s.TotalRevenue = s.TotalRevenue.Add(amount(r))
	}
	if s.Count > 0 {
		s.Average = s.TotalRevenue.DivRound(decimal.NewFromInt(int64(s.Count)), 4)
	}
	return s
}

// Group is a Summary for one key plus its share of the grand total
type Group struct {
	Summary
	Key   string          `json:"key"`
	Share decimal.Decimal `json:"share"` // percentage of overall TotalRevenue
}

// GroupBy aggregates per key over the same window and annotates each group
// with its percentage share of the total. Groups come back sorted by revenue,
// highest first.
func GroupBy[T any](records []T, key func(T) string, date func(T) time.Time, amount func(T) decimal.Decimal, w Window) []Group {
	byKey := map[string]*Group{}
	total := decimal.Zero
	for _, r := range records {
		if !w.Contains(date(r)) {
			continue
		}
		k := key(r)
		g, ok := byKey[k]
		if !ok {
			g = &Group{Key: k, Summary: Summary{TotalRevenue: decimal.Zero, Average: decimal.Zero}}
			byKey[k] = g
		}
		g.Count++
		g.TotalRevenue = g.TotalRevenue.Add(amount(r))
		total = total.Add(amount(r))
	}

	groups := make([]Group, 0, len(byKey))
	hundred := decimal.NewFromInt(100)
	for _, g := range byKey {
		if g.Count > 0 {
			g.Average = g.TotalRevenue.DivRound(decimal.NewFromInt(int64(g.Count)), 4)
		}
		if total.IsPositive() {
			g.Share = g.TotalRevenue.Mul(hundred).DivRound(total, 2)
		} else {
			g.Share = decimal.Zero
		}
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalRevenue.Equal(groups[j].TotalRevenue) {
			return groups[i].Key < groups[j].Key
		}
		return groups[i].TotalRevenue.GreaterThan(groups[j].TotalRevenue)
	})
	return groups
}
