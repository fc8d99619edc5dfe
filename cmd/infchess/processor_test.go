package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/config"
	"github.com/lgbarn/infinite-chess-go/internal/hashing"
	"github.com/lgbarn/infinite-chess-go/internal/testutil"
)

var foolsMate = []string{"f2f3", "e7e5", "g2g4", "d8h4"}

// writeGame stores a classical game on an 8x8 world border in dir.
func writeGame(t *testing.T, dir, name, conclusion string, moves ...string) string {
	t.Helper()
	g := config.Classical()
	g.Rules.WorldBorder = &chess.Bounds{Left: 1, Bottom: 1, Right: 8, Top: 8}
	for _, s := range moves {
		d, err := testutil.ParseUCI(s)
		if err != nil {
			t.Fatal(err)
		}
		g.Moves = append(g.Moves, d)
	}
	if conclusion != "" {
		c, err := chess.ParseConclusion(conclusion)
		if err != nil {
			t.Fatal(err)
		}
		g.Conclusion = &c
	}
	data, err := config.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testContext(cfg *config.Config, out *bytes.Buffer) *ProcessingContext {
	cfg.OutputFile = out
	return newProcessingContext(cfg, nil)
}

func TestProcessFiles_InputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, name := range []string{"a.yaml", "b.yaml", "c.yaml", "d.yaml", "e.yaml"} {
		if i%2 == 0 {
			paths = append(paths, writeGame(t, dir, name, "black checkmate", foolsMate...))
		} else {
			paths = append(paths, writeGame(t, dir, name, "", "e2e4"))
		}
	}

	var out bytes.Buffer
	cfg := config.NewConfigBuilder().WithVerbosity(0).WithWorkers(4).Build()
	stats, err := processFiles(paths, testContext(cfg, &out))
	if err != nil {
		t.Fatalf("processFiles() error = %v", err)
	}
	if stats.total != 5 || stats.reported != 5 || !stats.ok() {
		t.Errorf("stats = %+v; want 5 reported, all ok", stats)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines; want 5:\n%s", len(lines), out.String())
	}
	for i, line := range lines {
		want := paths[i] + ": ongoing"
		if i%2 == 0 {
			want = paths[i] + ": black checkmate"
		}
		if line != want {
			t.Errorf("line %d = %q; want %q", i, line, want)
		}
	}
}

func TestProcessFiles_IllegalAndMissing(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGame(t, dir, "illegal.yaml", "", "e2e4", "e7e4"),
		filepath.Join(dir, "missing.yaml"),
	}

	var out, log bytes.Buffer
	cfg := config.NewConfigBuilder().WithLogFile(&log).Build()
	stats, err := processFiles(paths, testContext(cfg, &out))
	if err != nil {
		t.Fatalf("processFiles() error = %v", err)
	}
	if stats.illegal != 1 || stats.failed != 1 || stats.ok() {
		t.Errorf("stats = %+v; want one illegal and one failed", stats)
	}
	if !strings.Contains(out.String(), "illegal move at ply 2") {
		t.Errorf("output missing the rejection:\n%s", out.String())
	}
	if !strings.Contains(log.String(), "missing.yaml") {
		t.Errorf("log missing the unreadable file:\n%s", log.String())
	}
}

func TestProcessFiles_Filter(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGame(t, dir, "mate.yaml", "black checkmate", foolsMate...),
		writeGame(t, dir, "open.yaml", "", "e2e4"),
	}

	var out bytes.Buffer
	cfg := config.NewConfigBuilder().WithVerbosity(0).WithCheckmateFilter(true).Build()
	stats, err := processFiles(paths, testContext(cfg, &out))
	if err != nil {
		t.Fatalf("processFiles() error = %v", err)
	}
	if stats.reported != 1 || stats.total != 2 {
		t.Errorf("stats = %+v; want 1 of 2 reported", stats)
	}
	if strings.Contains(out.String(), "open.yaml") {
		t.Errorf("unmatched game reported:\n%s", out.String())
	}
}

func TestProcessFiles_Duplicates(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGame(t, dir, "a.yaml", "", "g1f3", "g8f6", "b1c3"),
		writeGame(t, dir, "b.yaml", "", "b1c3", "g8f6", "g1f3"),
	}

	var out, dups bytes.Buffer
	cfg := config.NewConfigBuilder().WithVerbosity(0).WithWorkers(1).WithDuplicateSuppression(true).Build()
	cfg.Duplicate.DuplicateFile = &dups
	cfg.OutputFile = &out
	ctx := newProcessingContext(cfg, hashing.NewThreadSafeDuplicateDetector(false, 0))

	stats, err := processFiles(paths, ctx)
	if err != nil {
		t.Fatalf("processFiles() error = %v", err)
	}
	if stats.reported != 1 || stats.duplicates != 1 {
		t.Errorf("stats = %+v; want 1 reported and 1 duplicate", stats)
	}
	if !strings.Contains(out.String(), "a.yaml") || strings.Contains(out.String(), "b.yaml") {
		t.Errorf("output = %q; want only a.yaml", out.String())
	}
	if !strings.Contains(dups.String(), "b.yaml") {
		t.Errorf("duplicate file = %q; want b.yaml", dups.String())
	}
}

func TestProcessFiles_JSON(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeGame(t, dir, "mate.yaml", "black checkmate", foolsMate...)}

	var out bytes.Buffer
	cfg := config.NewConfigBuilder().WithVerbosity(0).WithFormat(config.JSON).Build()
	if _, err := processFiles(paths, testContext(cfg, &out)); err != nil {
		t.Fatalf("processFiles() error = %v", err)
	}
	for _, want := range []string{`"status": "concluded"`, `"conclusion": "black checkmate"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("JSON output missing %s:\n%s", want, out.String())
		}
	}
}

func TestProcessFiles_StopAfter(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.yaml", "b.yaml", "c.yaml", "d.yaml", "e.yaml", "f.yaml"} {
		paths = append(paths, writeGame(t, dir, name, "", "e2e4"))
	}

	var out, log bytes.Buffer
	cfg := config.NewConfigBuilder().WithLogFile(&log).WithWorkers(2).WithStopAfter(2).Build()
	stats, err := processFiles(paths, testContext(cfg, &out))
	if err != nil {
		t.Fatalf("processFiles() error = %v", err)
	}
	if stats.reported != 2 || stats.total != 2 {
		t.Errorf("stats = %+v; want 2 of 2 reported", stats)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], paths[0]) || !strings.HasPrefix(lines[1], paths[1]) {
		t.Errorf("output = %q; want the first two games", out.String())
	}
	if !strings.Contains(log.String(), "Stopped after 2 reported game(s)") {
		t.Errorf("log missing the stop:\n%s", log.String())
	}
}

func TestProcessFiles_JSONLines(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGame(t, dir, "mate.yaml", "black checkmate", foolsMate...),
		writeGame(t, dir, "open.yaml", "", "e2e4"),
	}

	var out bytes.Buffer
	cfg := config.NewConfigBuilder().WithVerbosity(0).WithFormat(config.JSONLines).Build()
	if _, err := processFiles(paths, testContext(cfg, &out)); err != nil {
		t.Fatalf("processFiles() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"status":"concluded"`) || !strings.Contains(lines[1], `"status":"ongoing"`) {
		t.Errorf("lines = %q; want concluded then ongoing", lines)
	}
}
