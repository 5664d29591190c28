package lookup

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/arnavshah/shift-lookup-go/pkg/models"
)

// UnparsedHour is reported for a time label without a leading hour. Such
// labels sort after every parsed hour regardless of this value.
const UnparsedHour = 99

// Lookup answers name searches and shift lookups over a fixed dataset
type Lookup struct {
	Roster   []string
	Shifts   []models.Shift
	Collator *Collator
}

// NewLookup creates a new lookup instance
func NewLookup(roster []string, shifts []models.Shift, collator *Collator) *Lookup {
	return &Lookup{
		Roster:   roster,
		Shifts:   shifts,
		Collator: collator,
	}
}

// Search narrows the roster to names containing query
func (l *Lookup) Search(query string) []string {
	return Search(query, l.Roster)
}

// Resolve returns the person's shifts grouped by day and the number of shifts
func (l *Lookup) Resolve(person string) ([]models.DayGroup, int) {
	return Resolve(person, l.Shifts, l.Collator)
}

// Search returns the names in roster that contain query, ignoring case.
// An empty query returns roster as is.
func Search(query string, roster []string) []string {
	if query == "" {
		return roster
	}

	needle := strings.ToLower(query)
	matches := make([]string, 0)
	for _, name := range roster {
		if strings.Contains(strings.ToLower(name), needle) {
			matches = append(matches, name)
		}
	}
	return matches
}

// ParseHour reads the hour from the leading digits of a "H:MM" label.
// Labels without leading digits return UnparsedHour.
func ParseHour(label string) int {
	hour, ok := parseHour(label)
	if !ok {
		return UnparsedHour
	}
	return hour
}

func parseHour(label string) (int, bool) {
	head, _, _ := strings.Cut(label, ":")
	head = strings.TrimLeftFunc(head, unicode.IsSpace)

	end := 0
	for end < len(head) && head[end] >= '0' && head[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	hour, err := strconv.Atoi(head[:end])
	if err != nil {
		return 0, false
	}
	return hour, true
}

// compareHours orders parsed hours numerically and unparsed labels after all of them
func compareHours(a, b string) int {
	ha, okA := parseHour(a)
	hb, okB := parseHour(b)
	switch {
	case okA && okB:
		return cmp.Compare(ha, hb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

// Filter returns the shifts assigned to person, matched exactly
func Filter(person string, shifts []models.Shift) []models.Shift {
	var out []models.Shift
	for _, sh := range shifts {
		if sh.Person == person {
			out = append(out, sh)
		}
	}
	return out
}

// SortShifts orders shifts by day, then by hour. Shifts with equal keys keep
// their relative order.
func SortShifts(shifts []models.Shift, collator *Collator) {
	slices.SortStableFunc(shifts, func(a, b models.Shift) int {
		if a.Day != b.Day {
			if c := collator.Compare(a.Day, b.Day); c != 0 {
				return c
			}
			// collation ties between different labels still need a fixed order
			return strings.Compare(a.Day, b.Day)
		}
		return compareHours(a.Time, b.Time)
	})
}

// GroupByDay partitions sorted shifts by day. Groups appear in the order
// their day is first seen.
func GroupByDay(shifts []models.Shift) []models.DayGroup {
	groups := make([]models.DayGroup, 0)
	index := make(map[string]int)
	for _, sh := range shifts {
		i, ok := index[sh.Day]
		if !ok {
			i = len(groups)
			index[sh.Day] = i
			groups = append(groups, models.DayGroup{Day: sh.Day})
		}
		groups[i].Shifts = append(groups[i].Shifts, sh)
	}
	return groups
}

// Resolve filters, sorts and groups the shifts of person. The count is the
// number of matching shift records.
func Resolve(person string, shifts []models.Shift, collator *Collator) ([]models.DayGroup, int) {
	if person == "" {
		return []models.DayGroup{}, 0
	}

	matched := Filter(person, shifts)
	SortShifts(matched, collator)
	return GroupByDay(matched), len(matched)
}

// Days returns the distinct day labels of shifts in collation order
func Days(shifts []models.Shift, collator *Collator) []string {
	seen := make(map[string]bool)
	days := make([]string, 0)
	for _, sh := range shifts {
		if !seen[sh.Day] {
			seen[sh.Day] = true
			days = append(days, sh.Day)
		}
	}
	slices.SortStableFunc(days, func(a, b string) int {
		if c := collator.Compare(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return days
}
