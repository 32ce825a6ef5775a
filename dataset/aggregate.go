package dataset

import (
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// CountEntry is one key of a grouped count.
type CountEntry struct {
	Key   string
	Count int
}

// countBy groups values and returns counts ordered by descending count,
// ties broken by key, so repeated runs over the same data print identically.
func countBy(values []string) []CountEntry {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	entries := make([]CountEntry, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, CountEntry{Key: k, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// CountByComplaintType counts requests per complaint type.
func CountByComplaintType(reqs []ServiceRequest) []CountEntry {
	values := make([]string, len(reqs))
	for i := range reqs {
		values[i] = reqs[i].ComplaintType
	}
	return countBy(values)
}

// CountByAgency counts requests per responding agency.
func CountByAgency(reqs []ServiceRequest) []CountEntry {
	values := make([]string, len(reqs))
	for i := range reqs {
		values[i] = reqs[i].Agency
	}
	return countBy(values)
}

// CountByBorough counts requests per borough.
func CountByBorough(reqs []ServiceRequest) []CountEntry {
	values := make([]string, len(reqs))
	for i := range reqs {
		values[i] = reqs[i].Borough
	}
	return countBy(values)
}

// ResolutionStats summarizes open-to-close durations. Open requests and
// closed-before-opened anomalies are counted but never contribute to the
// duration statistics.
type ResolutionStats struct {
	Resolved  int
	Open      int
	Anomalous int

	Mean time.Duration
	Min  time.Duration
	Max  time.Duration
}

// Resolution computes duration statistics over the valid closed requests.
func Resolution(reqs []ServiceRequest) ResolutionStats {
	var stats ResolutionStats
	var total time.Duration

	for i := range reqs {
		r := &reqs[i]
		switch {
		case r.Anomalous():
			stats.Anomalous++
		case !r.Closed():
			stats.Open++
		default:
			d := r.ClosedDate.Sub(r.CreatedDate)
			if stats.Resolved == 0 || d < stats.Min {
				stats.Min = d
			}
			if d > stats.Max {
				stats.Max = d
			}
			total += d
			stats.Resolved++
		}
	}

	if stats.Resolved > 0 {
		stats.Mean = total / time.Duration(stats.Resolved)
	}
	return stats
}

// BusinessDayEntry pairs a request with the number of US business days it
// spent open.
type BusinessDayEntry struct {
	UniqueKey    int64
	BusinessDays int
}

// BusinessDayResolution computes, per valid closed request, how many US
// business days (weekends and federal holidays excluded) elapsed between
// creation and closing.
func BusinessDayResolution(reqs []ServiceRequest) []BusinessDayEntry {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)

	entries := make([]BusinessDayEntry, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		if !r.Closed() || r.Anomalous() {
			continue
		}
		entries = append(entries, BusinessDayEntry{
			UniqueKey:    r.UniqueKey,
			BusinessDays: c.WorkdaysInRange(r.CreatedDate, r.ClosedDate),
		})
	}
	return entries
}
