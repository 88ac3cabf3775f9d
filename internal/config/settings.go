// Package config provides search settings, the textual settings and search
// strings, and the runtime configuration of the domination search.
package config

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/lgbarn/domination-go/internal/chess"
	"github.com/lgbarn/domination-go/internal/errors"
)

// Unlimited disables the edge-piece limit.
const Unlimited = math.MaxInt

// Settings holds everything that can change the result set of a search.
// Settings are read-only once a search starts and may be shared between
// independent searches.
type Settings struct {
	// Pieces is the major piece multiset as sorted letters, e.g. "BBNNQRR".
	Pieces string

	Dims        chess.Dims
	TargetScore int

	// PieceCoversOwnSquare counts a piece's own square as covered ("D").
	// With "A" only attacked squares count.
	PieceCoversOwnSquare bool

	// ScoreByPieceValue scores by point value ("V") rather than piece count ("N").
	ScoreByPieceValue bool

	// Placement rules. The defaults give a comprehensive unfiltered search.
	AllowRooksQueensOnSameLines bool
	AllowPawnsOnStartingRank    bool
	MaxNonRookNonPawnOnEdge     int
	MirrorSymmetry              bool

	// Range [LastPieceStart, LastPieceEnd) of the symmetry piece, used to
	// partition a search.
	LastPieceStart int
	LastPieceEnd   int
}

// NewSettings returns settings for an unfiltered search of pieces on a
// standard board.
func NewSettings(pieces string, target int) *Settings {
	return &Settings{
		Pieces:                      SortPieces(pieces),
		Dims:                        chess.Standard,
		TargetScore:                 target,
		PieceCoversOwnSquare:        true,
		AllowRooksQueensOnSameLines: true,
		AllowPawnsOnStartingRank:    true,
		MaxNonRookNonPawnOnEdge:     Unlimited,
		MirrorSymmetry:              true,
		LastPieceEnd:                chess.Standard.Squares(),
	}
}

// SortPieces upper-cases and sorts piece letters so equal multisets compare equal.
func SortPieces(pieces string) string {
	b := []byte(strings.ToUpper(strings.TrimSpace(pieces)))
	slices.Sort(b)
	return string(b)
}

// SettingsHeaders returns the column names matching Settings.Values.
func SettingsHeaders() []string {
	return []string{"pieces", "dims", "target", "cover", "scoring", "rules"}
}

var edgeLimitPattern = regexp.MustCompile(`\d+$`)

// ParseSettings parses the settings part of a search string:
//
//	<pieces>,<files>x<ranks>,<target>,<A|D>,<V|N>,<rules>
//
// Rules letters: R disallows rooks and queens sharing a rank or file, P
// disallows pawns on the starting rank, F disables mirror pruning. A number
// at the end limits the non-rook, non-pawn pieces on the edge.
func ParseSettings(s string, start, end int) (*Settings, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return nil, &errors.ParseError{Err: errors.ErrInvalidSettings, Input: s, Expected: "6 comma separated fields", Got: strconv.Itoa(len(parts))}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	dims, err := ParseDims(parts[1])
	if err != nil {
		return nil, &errors.ParseError{Err: errors.ErrInvalidSettings, Input: s, Field: "dims", Expected: "<files>x<ranks>", Got: parts[1]}
	}

	target, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, &errors.ParseError{Err: errors.ErrInvalidSettings, Input: s, Field: "target", Expected: "integer", Got: parts[2]}
	}

	rules := parts[5]
	st := &Settings{
		Pieces:                      SortPieces(parts[0]),
		Dims:                        dims,
		TargetScore:                 target,
		PieceCoversOwnSquare:        parts[3] != "A",
		ScoreByPieceValue:           parts[4] == "V",
		AllowRooksQueensOnSameLines: !strings.Contains(rules, "R"),
		AllowPawnsOnStartingRank:    !strings.Contains(rules, "P"),
		MirrorSymmetry:              !strings.Contains(rules, "F"),
		MaxNonRookNonPawnOnEdge:     Unlimited,
		LastPieceStart:              start,
		LastPieceEnd:                end,
	}
	if m := edgeLimitPattern.FindString(rules); m != "" {
		st.MaxNonRookNonPawnOnEdge, _ = strconv.Atoi(m)
	}

	if err := st.Validate(); err != nil {
		return nil, errors.Wrapf(err, "settings %q", s)
	}
	return st, nil
}

// ParseDims parses "<files>x<ranks>".
func ParseDims(s string) (chess.Dims, error) {
	files, ranks, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return chess.Dims{}, fmt.Errorf("dims %q: %w", s, errors.ErrInvalidSettings)
	}
	f, errF := strconv.Atoi(files)
	r, errR := strconv.Atoi(ranks)
	d := chess.Dims{Ranks: r, Files: f}
	if errF != nil || errR != nil || !d.Valid() {
		return chess.Dims{}, fmt.Errorf("dims %q: %w", s, errors.ErrInvalidSettings)
	}
	return d, nil
}

// Validate checks that the settings describe a runnable search.
func (s *Settings) Validate() error {
	if s.Pieces == "" {
		return fmt.Errorf("empty piece set: %w", errors.ErrInvalidSettings)
	}
	for i := 0; i < len(s.Pieces); i++ {
		t, ok := chess.ParsePieceType(s.Pieces[i])
		if !ok || !t.IsMajor() {
			return fmt.Errorf("piece %q is not a major piece: %w", s.Pieces[i], errors.ErrInvalidSettings)
		}
	}
	if !s.Dims.Valid() {
		return fmt.Errorf("dims %s: %w", s.Dims, errors.ErrInvalidSettings)
	}
	if s.MaxNonRookNonPawnOnEdge < 0 {
		return fmt.Errorf("edge limit %d: %w", s.MaxNonRookNonPawnOnEdge, errors.ErrInvalidSettings)
	}
	if s.LastPieceStart < 0 || s.LastPieceEnd > s.Dims.Squares() || s.LastPieceStart >= s.LastPieceEnd {
		return fmt.Errorf("range %d-%d on %d squares: %w", s.LastPieceStart, s.LastPieceEnd, s.Dims.Squares(), errors.ErrInvalidSettings)
	}
	return nil
}

// PieceCounts returns how many pieces of each type the piece set holds.
func (s *Settings) PieceCounts() map[chess.PieceType]int {
	counts := make(map[chess.PieceType]int)
	for i := 0; i < len(s.Pieces); i++ {
		if t, ok := chess.ParsePieceType(s.Pieces[i]); ok {
			counts[t]++
		}
	}
	return counts
}

// MaxPawns is the most pawns a board can hold: one per file.
func (s *Settings) MaxPawns() int {
	return s.Dims.Files
}

// WithRange returns a copy of the settings restricted to [start, end).
func (s *Settings) WithRange(start, end int) *Settings {
	c := *s
	c.LastPieceStart = start
	c.LastPieceEnd = end
	return &c
}

// RuleString returns the rules field of the settings string.
func (s *Settings) RuleString() string {
	var sb strings.Builder
	if !s.AllowRooksQueensOnSameLines {
		sb.WriteByte('R')
	}
	if !s.AllowPawnsOnStartingRank {
		sb.WriteByte('P')
	}
	if !s.MirrorSymmetry {
		sb.WriteByte('F')
	}
	if s.MaxNonRookNonPawnOnEdge != Unlimited {
		sb.WriteString(strconv.Itoa(s.MaxNonRookNonPawnOnEdge))
	}
	return sb.String()
}

// Values returns the settings fields in settings-string order.
func (s *Settings) Values() []string {
	cover := "A"
	if s.PieceCoversOwnSquare {
		cover = "D"
	}
	scoring := "N"
	if s.ScoreByPieceValue {
		scoring = "V"
	}
	return []string{
		s.Pieces,
		s.Dims.String(),
		strconv.Itoa(s.TargetScore),
		cover,
		scoring,
		s.RuleString(),
	}
}

// String returns the settings string; it parses back to equal settings.
func (s *Settings) String() string {
	return strings.Join(s.Values(), ",")
}

// RangeString returns the symmetry range as "<start>-<end>".
func (s *Settings) RangeString() string {
	return fmt.Sprintf("%d-%d", s.LastPieceStart, s.LastPieceEnd)
}
