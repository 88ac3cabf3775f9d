package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/domination-go/internal/config"
	domerrors "github.com/lgbarn/domination-go/internal/errors"
	"github.com/lgbarn/domination-go/internal/output"
	"github.com/lgbarn/domination-go/internal/search"
)

func TestLoadSearchFile(t *testing.T) {
	t.Run("skips comments and blank lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "searches.txt")
		content := `# queens first
|QQ,8x8,4,D,N,

  Ra1;Rb2 | RR,3x3,4,D,N,R | 0-9  
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		got, err := loadSearchFile(path)
		if err != nil {
			t.Fatalf("loadSearchFile() error = %v", err)
		}
		want := []string{"|QQ,8x8,4,D,N,", "Ra1;Rb2 | RR,3x3,4,D,N,R | 0-9"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("loadSearchFile() = %v, want %v", got, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := loadSearchFile("/nonexistent/searches.txt"); err == nil {
			t.Error("loadSearchFile() expected error for missing file")
		}
	})
}

func TestParseTypeSets(t *testing.T) {
	minPoints, maxPoints, limits, err := parseTypeSets("23, 33,1,2,2,2")
	if err != nil {
		t.Fatalf("parseTypeSets() error = %v", err)
	}
	if minPoints != 23 || maxPoints != 33 {
		t.Errorf("points = %d-%d; want 23-33", minPoints, maxPoints)
	}
	want := search.TypeLimits{Queens: 1, Rooks: 2, Bishops: 2, Knights: 2}
	if limits != want {
		t.Errorf("limits = %+v; want %+v", limits, want)
	}

	for _, bad := range []string{"", "1,2,3", "0,9,1,1,1,x", "0,9,1,-1,1,1"} {
		if _, _, _, err := parseTypeSets(bad); !errors.Is(err, domerrors.ErrInvalidSettings) {
			t.Errorf("parseTypeSets(%q) error = %v; want ErrInvalidSettings", bad, err)
		}
	}
}

func TestGeneratedSearches(t *testing.T) {
	got, err := generatedSearches("0,5,0,1,1,0", "4x4,2,D,N,F")
	if err != nil {
		t.Fatalf("generatedSearches() error = %v", err)
	}
	want := []string{"|B,4x4,2,D,N,F", "|R,4x4,2,D,N,F"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("generatedSearches() = %v, want %v", got, want)
	}

	for _, s := range got {
		if _, err := config.ParseSearch(s); err != nil {
			t.Errorf("generated search %q does not parse: %v", s, err)
		}
	}
}

func TestCollectSearches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searches.txt")
	if err := os.WriteFile(path, []byte("|N,3x3,1,D,N,\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := collectSearches([]string{"|Q,3x3,1,D,N,"}, path, "9,9,1,0,0,0", "3x3,1,D,N,")
	if err != nil {
		t.Fatalf("collectSearches() error = %v", err)
	}
	want := []string{"|Q,3x3,1,D,N,", "|N,3x3,1,D,N,", "|Q,3x3,1,D,N,"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collectSearches() = %v, want %v", got, want)
	}

	if _, err := collectSearches(nil, "", "bad", ""); err == nil {
		t.Error("collectSearches() expected error for bad typesets")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("WARN", &buf)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("log output = %q; want only the warning", buf.String())
	}

	if _, err := newLogger("loud", &buf); err == nil {
		t.Error("newLogger() expected error for unknown level")
	}
}

func testRuntime(dir string) config.Runtime {
	return config.Runtime{
		OutputDir:      dir,
		UpdateInterval: time.Minute,
		Verbosity:      config.VerbositySolutions,
		Workers:        2,
		Partitions:     1,
		LogLevel:       "info",
	}
}

func reportFile(t *testing.T, dir, s string) string {
	t.Helper()
	info, err := config.ParseSearch(s)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output.NewReporter(config.Runtime{OutputDir: dir}, nil).Path(info.Settings))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	return string(data)
}

func TestRunSearches(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	searches := []string{"|Q,3x3,1,D,N,", "|RRRR,3x3,4,D,N,R", "not a search"}

	failed := runSearches(context.Background(), searches, testRuntime(dir), zerolog.Nop(), &console)
	if failed != 2 {
		t.Errorf("failed = %d; want 2", failed)
	}

	for _, want := range []string{"SOLUTION FOUND", "Board: Qb2", "FINAL REPORT"} {
		if !strings.Contains(console.String(), want) {
			t.Errorf("console output missing %q:\n%s", want, console.String())
		}
	}
	report := reportFile(t, dir, searches[0])
	if strings.Count(report, "FINAL REPORT") != 1 {
		t.Errorf("want one final report, got:\n%s", report)
	}
}

func TestRunSearches_Interrupted(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var console bytes.Buffer
	failed := runSearches(ctx, []string{"|Q,3x3,1,D,N,"}, testRuntime(dir), zerolog.Nop(), &console)
	if failed != 1 {
		t.Errorf("failed = %d; want 1", failed)
	}
	if console.Len() != 0 {
		t.Errorf("interim reports should stay off the console at this verbosity, got:\n%s", console.String())
	}
}

func TestRunSearches_InterruptedBatch(t *testing.T) {
	searches := []string{
		"|Q,3x3,1,D,N,",
		"|Q,4x4,1,D,N,",
		"|R,3x3,1,D,N,",
		"|B,3x3,1,D,N,",
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Whether a search was skipped, drained, or cancelled mid-run, none of
	// them finish.
	failed := runSearches(ctx, searches, testRuntime(t.TempDir()), zerolog.Nop(), nil)
	if failed != len(searches) {
		t.Errorf("failed = %d; want %d", failed, len(searches))
	}
}

func TestRulesHelp_FirstRankRule(t *testing.T) {
	for _, want := range []string{
		"no pawns on the first rank",
		"the pieces must cover it",
		"second-rank square needs a pawn on it (self-cover only)",
	} {
		if !strings.Contains(rulesHelp, want) {
			t.Errorf("rules help missing %q:\n%s", want, rulesHelp)
		}
	}
}
