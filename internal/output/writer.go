// Package output formats search reports and writes them to report files and
// the console.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lgbarn/domination-go/internal/board"
	"github.com/lgbarn/domination-go/internal/config"
)

// ReportWriter is the interface for writing search reports.
type ReportWriter interface {
	// Solution reports a dominating board, including any added pawns.
	Solution(info *config.SearchInfo, solution *board.Board) error

	// Interim reports progress with a string that resumes the search.
	Interim(info *config.SearchInfo) error

	// Final reports the totals of a finished search.
	Final(info *config.SearchInfo) error
}

// Reporter appends every report to a file named after the search in the
// runtime output directory, and echoes reports to the console according to
// the runtime verbosity. It may be shared by concurrently running searches.
type Reporter struct {
	rt      config.Runtime
	console io.Writer

	mu sync.Mutex
}

// NewReporter creates a reporter writing under rt.OutputDir. A nil console
// disables console output.
func NewReporter(rt config.Runtime, console io.Writer) *Reporter {
	return &Reporter{
		rt:      rt,
		console: console,
	}
}

// FileName returns the report file name for a search. It holds everything
// that affects the result set, so searches with equal settings and range
// share a file.
func FileName(s *config.Settings) string {
	return fmt.Sprintf("%s-%d,%d", strings.Join(s.Values(), ","), s.LastPieceStart, s.LastPieceEnd)
}

// Path returns the report file path for a search.
func (r *Reporter) Path(s *config.Settings) string {
	return filepath.Join(r.rt.OutputDir, FileName(s))
}

// Solution implements ReportWriter.
func (r *Reporter) Solution(info *config.SearchInfo, solution *board.Board) error {
	return r.write(info, FormatSolution(solution), config.VerbositySolutions)
}

// Interim implements ReportWriter.
func (r *Reporter) Interim(info *config.SearchInfo) error {
	return r.write(info, FormatInterim(info), config.VerbosityProgress)
}

// Final implements ReportWriter.
func (r *Reporter) Final(info *config.SearchInfo) error {
	return r.write(info, FormatFinal(info), config.VerbositySolutions)
}

func (r *Reporter) write(info *config.SearchInfo, report string, level int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.rt.OutputDir, 0o755); err != nil { //nolint:gosec // G301: report directory is user readable
		return fmt.Errorf("creating report directory: %w", err)
	}

	path := r.Path(info.Settings)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for report files
	if err != nil {
		return fmt.Errorf("opening report file %s: %w", path, err)
	}

	if _, err := fmt.Fprintf(file, "%s\n\n", report); err != nil {
		file.Close() //nolint:errcheck,gosec // G104: write error takes precedence
		return fmt.Errorf("writing report file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing report file %s: %w", path, err)
	}

	if r.console != nil && r.rt.ConsoleLevel(level) {
		fmt.Fprintf(r.console, "%s\n\n", report) //nolint:errcheck // console output is best effort
	}
	return nil
}

// FormatSolution formats a solution report: the rendered board followed by
// its representation.
func FormatSolution(solution *board.Board) string {
	var sb strings.Builder
	sb.WriteString("SOLUTION FOUND\n")
	sb.WriteString("--------------\n")
	sb.WriteString(solution.Render())
	sb.WriteString("Board: ")
	sb.WriteString(solution.Representation())
	return sb.String()
}

// FormatInterim formats an interim report: a header line and the search
// continue string, with matching columns padded to equal width.
func FormatInterim(info *config.SearchInfo) string {
	settingsHeaders := config.SettingsHeaders()
	settingsValues := info.Settings.Values()
	statsHeaders := config.StatsHeaders()
	statsValues := info.Stats.Values()

	columns := []string{"Current board", "start-end"}
	cells := []string{info.Board, info.Settings.RangeString()}

	PadAlign(settingsHeaders, settingsValues)
	PadAlign(statsHeaders, statsValues)
	PadAlign(columns, cells)

	header := strings.Join([]string{
		columns[0],
		strings.Join(settingsHeaders, ", "),
		columns[1],
		strings.Join(statsHeaders, ", "),
	}, " | ")
	values := strings.Join([]string{
		cells[0],
		strings.Join(settingsValues, ", "),
		cells[1],
		strings.Join(statsValues, ", "),
	}, " | ")

	return "Interim Report:         " + header + "\nSearch continue string: " + values
}

// FormatFinal formats the final report of a search.
func FormatFinal(info *config.SearchInfo) string {
	s, st := info.Settings, info.Stats
	lines := []string{
		"FINAL REPORT",
		"------------",
		"Piece set: " + s.Pieces,
		"Board: " + s.Dims.String(),
		fmt.Sprintf("Target Score: %d", s.TargetScore),
		"Piece placement rules: " + s.RuleString(),
		"Range: " + s.RangeString(),
		fmt.Sprintf("Major boards evaluated: %d", st.MajorBoards),
		fmt.Sprintf("All boards evaluated: %d", st.TotalBoards),
		fmt.Sprintf("Solutions Found: %d", st.Solutions),
		fmt.Sprintf("Total seconds: %d", int64(st.Elapsed.Seconds())),
	}
	return strings.Join(lines, "\n")
}

// PadAlign left-pads the shorter of each pair of entries so a[i] and b[i]
// have equal width.
func PadAlign(a, b []string) {
	for i := range a {
		if i >= len(b) {
			return
		}
		switch {
		case len(a[i]) > len(b[i]):
			b[i] = padLeft(b[i], len(a[i]))
		case len(b[i]) > len(a[i]):
			a[i] = padLeft(a[i], len(b[i]))
		}
	}
}

func padLeft(s string, width int) string {
	return fmt.Sprintf("%*s", width, s)
}
