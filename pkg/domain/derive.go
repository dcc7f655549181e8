package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Derived fields are never trusted as stored: every mutation site recomputes
// them through these functions, and tests recompute rather than read.

// PriorityTotal returns the sum of the five prioritization scores.
func PriorityTotal(p PrioritizedLivelihood) int {
	return p.FoodSecurity + p.Area + p.LocalDevelopment + p.Environment + p.Inclusion
}

// ThreatScore returns the prioritization sum for a threat.
func ThreatScore(t ThreatRecord) int {
	return t.Magnitude + t.Frequency + t.Trend
}

// EventTension returns the tension total for one evolution event.
func EventTension(e ConflictEvent) int {
	return e.Differences + e.Cooperation
}

// ComputeSizeBands partitions the inclusive [min,max] range into three
// tertile bands using integer division of the span into thirds. Degenerate
// spans collapse:
//
//	span 0: medium and large are N/A
//	span 1: medium is the single point max, large is N/A
//	span 2: one value per band (min, min+1, max)
//
// Fractional inputs are banded on their integer parts.
func ComputeSizeBands(min, max float64) (SizeBands, error) {
	if min <= 0 || max <= 0 {
		return SizeBands{}, fmt.Errorf("size range must be positive, got [%v, %v]", min, max)
	}
	if min > max {
		return SizeBands{}, fmt.Errorf("size range minimum %v exceeds maximum %v", min, max)
	}
	lo, hi := int(min), int(max)
	span := hi - lo
	switch {
	case span == 0:
		return SizeBands{
			Small:  strconv.Itoa(lo),
			Medium: BandNotApplicable,
			Large:  BandNotApplicable,
		}, nil
	case span == 1:
		return SizeBands{
			Small:  strconv.Itoa(lo),
			Medium: strconv.Itoa(hi),
			Large:  BandNotApplicable,
		}, nil
	case span == 2:
		return SizeBands{
			Small:  strconv.Itoa(lo),
			Medium: strconv.Itoa(lo + 1),
			Large:  strconv.Itoa(hi),
		}, nil
	default:
		smallHi := lo + span/3
		mediumHi := lo + (2*span)/3
		return SizeBands{
			Small:  rangeLabel(lo, smallHi),
			Medium: rangeLabel(smallHi+1, mediumHi),
			Large:  rangeLabel(mediumHi+1, hi),
		}, nil
	}
}

func rangeLabel(lo, hi int) string {
	if lo >= hi {
		return strconv.Itoa(hi)
	}
	return strconv.Itoa(lo) + " - " + strconv.Itoa(hi)
}

// TrueMarketFlags renders the set flags as a comma-joined list for export.
func TrueMarketFlags(m MarketFlags) string {
	var out []string
	if m.Local {
		out = append(out, "local")
	}
	if m.Regional {
		out = append(out, "regional")
	}
	if m.National {
		out = append(out, "national")
	}
	if m.Export {
		out = append(out, "export")
	}
	if m.NotApplicable {
		out = append(out, "n/a")
	}
	return strings.Join(out, ", ")
}

// TrueEquityFlags renders the set equity flags as a comma-joined list.
func TrueEquityFlags(e EquityFlags) string {
	var out []string
	if e.Men {
		out = append(out, "men")
	}
	if e.Women {
		out = append(out, "women")
	}
	if e.Youth {
		out = append(out, "youth")
	}
	if e.Marginalized {
		out = append(out, "marginalized groups")
	}
	return strings.Join(out, ", ")
}

// SortEventsByYear orders events ascending by integer year. Entries whose
// year fails to parse sort to the end in their original relative order.
func SortEventsByYear(events []ConflictEvent) []ConflictEvent {
	type keyed struct {
		event ConflictEvent
		year  int
		ok    bool
	}
	ks := make([]keyed, len(events))
	for i, e := range events {
		y, err := strconv.Atoi(strings.TrimSpace(e.Year))
		ks[i] = keyed{event: e, year: y, ok: err == nil}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ok && ks[j].ok {
			return ks[i].year < ks[j].year
		}
		return ks[i].ok && !ks[j].ok
	})
	out := make([]ConflictEvent, len(ks))
	for i, k := range ks {
		out[i] = k.event
	}
	return out
}
