package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/domination-go/internal/board"
	"github.com/lgbarn/domination-go/internal/chess"
	"github.com/lgbarn/domination-go/internal/config"
	"github.com/lgbarn/domination-go/internal/testutil"
)

func testSearch(t *testing.T) *config.SearchInfo {
	t.Helper()
	info, err := config.ParseSearch("Rb2;Ra1|RR,3x3,4,D,N,R|0-9|12,40,3,75")
	testutil.AssertNoError(t, err)
	return info
}

func TestFileName(t *testing.T) {
	info := testSearch(t)
	testutil.AssertEqual(t, FileName(info.Settings), "RR,3x3,4,D,N,R-0,9")
	testutil.AssertEqual(t, FileName(info.Settings.WithRange(3, 6)), "RR,3x3,4,D,N,R-3,6")
}

func TestPadAlign(t *testing.T) {
	a := []string{"ab", "c", "same"}
	b := []string{"x", "defg", "four"}

	PadAlign(a, b)

	testutil.AssertEqual(t, a, []string{"ab", "   c", "same"})
	testutil.AssertEqual(t, b, []string{" x", "defg", "four"})
}

func TestFormatInterim(t *testing.T) {
	info := testSearch(t)

	report := FormatInterim(info)
	lines := strings.Split(report, "\n")
	testutil.AssertEqual(t, len(lines), 2)
	testutil.AssertContains(t, lines[0], "Interim Report:")
	testutil.AssertContains(t, lines[0], "pieces,")
	testutil.AssertContains(t, lines[0], "majorevals")
	testutil.AssertEqual(t, len(lines[0]), len(lines[1]), "columns should line up")

	// The continue string resumes the same search.
	continueString := strings.TrimPrefix(lines[1], "Search continue string: ")
	resumed, err := config.ParseSearch(continueString)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resumed, info)
}

func TestFormatFinal(t *testing.T) {
	info := testSearch(t)
	info.Stats.Elapsed = 90 * time.Second

	report := FormatFinal(info)
	for _, want := range []string{
		"FINAL REPORT",
		"Piece set: RR",
		"Target Score: 4",
		"Piece placement rules: R",
		"Major boards evaluated: 12",
		"All boards evaluated: 40",
		"Solutions Found: 3",
		"Total seconds: 90",
	} {
		testutil.AssertContains(t, report, want)
	}
}

func TestFormatSolution(t *testing.T) {
	b := board.FromPieces(chess.Dims{Ranks: 3, Files: 3}, testutil.MustParsePieces(t, "Kb2"), nil)

	testutil.AssertEqual(t, FormatSolution(b), "SOLUTION FOUND\n--------------\n...\n.K.\n...\nBoard: Kb2")
}

func TestReporter_FileAndConsole(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	info := testSearch(t)
	solution := board.FromPieces(chess.Dims{Ranks: 3, Files: 3}, testutil.MustParsePieces(t, "Kb2"), nil)

	r := NewReporter(config.Runtime{OutputDir: dir, Verbosity: config.VerbositySolutions}, &console)
	testutil.AssertNoError(t, r.Solution(info, solution))
	testutil.AssertNoError(t, r.Interim(info))
	testutil.AssertNoError(t, r.Final(info))

	data, err := os.ReadFile(r.Path(info.Settings))
	testutil.AssertNoError(t, err)
	file := string(data)
	testutil.AssertContains(t, file, "SOLUTION FOUND")
	testutil.AssertContains(t, file, "Interim Report")
	testutil.AssertContains(t, file, "FINAL REPORT")

	testutil.AssertContains(t, console.String(), "SOLUTION FOUND")
	testutil.AssertContains(t, console.String(), "FINAL REPORT")
	testutil.AssertNotContains(t, console.String(), "Interim Report", "interim reports need progress verbosity")
}

func TestReporter_ConsoleVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      []string
		notWant   []string
	}{
		{"quiet", config.VerbosityQuiet, nil, []string{"FINAL REPORT", "Interim Report"}},
		{"solutions", config.VerbositySolutions, []string{"FINAL REPORT"}, []string{"Interim Report"}},
		{"progress", config.VerbosityProgress, []string{"FINAL REPORT", "Interim Report"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console bytes.Buffer
			info := testSearch(t)
			r := NewReporter(config.Runtime{OutputDir: t.TempDir(), Verbosity: tt.verbosity}, &console)
			testutil.AssertNoError(t, r.Interim(info))
			testutil.AssertNoError(t, r.Final(info))

			for _, s := range tt.want {
				testutil.AssertContains(t, console.String(), s)
			}
			for _, s := range tt.notWant {
				testutil.AssertNotContains(t, console.String(), s)
			}

			// The file always gets every report.
			data, err := os.ReadFile(r.Path(info.Settings))
			testutil.AssertNoError(t, err)
			testutil.AssertContains(t, string(data), "Interim Report")
		})
	}
}

func TestReporter_Appends(t *testing.T) {
	dir := t.TempDir()
	info := testSearch(t)
	r := NewReporter(config.Runtime{OutputDir: dir, Verbosity: config.VerbosityProgress}, nil)

	testutil.AssertNoError(t, r.Final(info))
	testutil.AssertNoError(t, r.Final(info))

	data, err := os.ReadFile(r.Path(info.Settings))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, strings.Count(string(data), "FINAL REPORT"), 2)
}

func TestReporter_BadDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := dir + "/file"
	testutil.AssertNoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	r := NewReporter(config.Runtime{OutputDir: blocker + "/reports"}, nil)
	err := r.Final(testSearch(t))
	if err == nil {
		t.Fatal("expected an error when the report directory cannot be created")
	}
}

func TestReportWriter_Interface(t *testing.T) {
	var _ ReportWriter = NewReporter(config.Runtime{OutputDir: t.TempDir()}, nil)
}
