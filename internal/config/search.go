package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lgbarn/domination-go/internal/errors"
)

// Stats are the run-time counters of one search. They are carried in the
// search string so a resumed search continues counting.
type Stats struct {
	MajorBoards int64         // major-piece configurations evaluated
	TotalBoards int64         // boards evaluated including pawn trials
	Solutions   int64         // dominating configurations found
	Elapsed     time.Duration // accumulated search time
}

// StatsHeaders returns the column names matching Stats.Values.
func StatsHeaders() []string {
	return []string{"majorevals", "totalevals", "sols", "elapsedS"}
}

// ParseStats parses "<major>,<total>,<solutions>,<elapsedSeconds>".
func ParseStats(s string) (Stats, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Stats{}, &errors.ParseError{Err: errors.ErrInvalidSearch, Input: s, Field: "stats", Expected: "4 comma separated counts"}
	}

	var n [4]int64
	for i, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || v < 0 {
			return Stats{}, &errors.ParseError{Err: errors.ErrInvalidSearch, Input: s, Field: "stats", Expected: "non-negative integer", Got: part}
		}
		n[i] = v
	}

	return Stats{
		MajorBoards: n[0],
		TotalBoards: n[1],
		Solutions:   n[2],
		Elapsed:     time.Duration(n[3]) * time.Second,
	}, nil
}

// Values returns the counters in stats-string order.
func (s Stats) Values() []string {
	return []string{
		strconv.FormatInt(s.MajorBoards, 10),
		strconv.FormatInt(s.TotalBoards, 10),
		strconv.FormatInt(s.Solutions, 10),
		strconv.FormatInt(int64(s.Elapsed/time.Second), 10),
	}
}

// String returns the stats field of a search string.
func (s Stats) String() string {
	return strings.Join(s.Values(), ",")
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.MajorBoards += other.MajorBoards
	s.TotalBoards += other.TotalBoards
	s.Solutions += other.Solutions
	s.Elapsed += other.Elapsed
}

// SearchInfo is one search: where it is, what it searches and how far it got.
type SearchInfo struct {
	// Board is the representation of the current board, empty for a fresh search.
	Board    string
	Settings *Settings
	Stats    Stats
}

// ParseSearch parses a search (continue) string:
//
//	<board> | <settings> | <start>-<end> | <stats>
//
// Spaces around fields are ignored. The range and stats fields may be
// omitted, giving a full range and zero counters.
func ParseSearch(s string) (*SearchInfo, error) {
	parts := strings.Split(s, "|")
	if len(parts) < 2 || len(parts) > 4 {
		return nil, &errors.ParseError{Err: errors.ErrInvalidSearch, Input: s, Expected: "2 to 4 fields separated by |", Got: strconv.Itoa(len(parts))}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	start, end := 0, -1
	if len(parts) > 2 {
		var err error
		start, end, err = parseRange(parts[2])
		if err != nil {
			return nil, &errors.ParseError{Err: errors.ErrInvalidSearch, Input: s, Field: "range", Expected: "<start>-<end>", Got: parts[2]}
		}
	}
	if end < 0 {
		// Range omitted: cover the whole board once the dims are known.
		d, err := ParseDims(settingsField(parts[1], 1))
		if err != nil {
			return nil, errors.Wrapf(err, "search %q", s)
		}
		end = d.Squares()
	}

	settings, err := ParseSettings(parts[1], start, end)
	if err != nil {
		return nil, err
	}

	info := &SearchInfo{Board: parts[0], Settings: settings}
	if len(parts) > 3 {
		if info.Stats, err = ParseStats(parts[3]); err != nil {
			return nil, err
		}
	}
	return info, nil
}

func parseRange(s string) (start, end int, err error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, errors.ErrInvalidSearch
	}
	if start, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, err
	}
	if end, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func settingsField(s string, i int) string {
	parts := strings.Split(s, ",")
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// ContinueString returns the search string that resumes this search.
func (i *SearchInfo) ContinueString() string {
	return strings.Join([]string{
		i.Board,
		i.Settings.String(),
		i.Settings.RangeString(),
		i.Stats.String(),
	}, "|")
}

// String returns the settings and stats of the search.
func (i *SearchInfo) String() string {
	return fmt.Sprintf("%s | %s", i.Settings, i.Stats)
}
