package rep

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/repcount/internal/pose"
	"github.com/banshee-data/repcount/internal/timeutil"
)

func sessionWithHistory(t *testing.T, clock timeutil.Clock) *Session {
	t.Helper()
	config := DefaultSessionConfig()
	config.CenterSmoothWindow = 2
	session := NewSession(config, clock)

	frames := []pose.Frame{
		makeFrame(detected(220), detected(300), detected(298)),
		makeFrame(detected(222), detected(150), pose.Point{}), // right wrist dropped
		makeFrame(detected(221), detected(240), detected(242)),
	}
	for _, f := range frames {
		if _, err := session.Update(f); err != nil {
			t.Fatal(err)
		}
	}
	return session
}

func TestWriteHistoryFormat(t *testing.T) {
	session := sessionWithHistory(t, nil)

	var buf bytes.Buffer
	if err := session.WriteHistory(&buf); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	wantHeader := []string{"left_raw", "left_centered", "right_raw", "right_centered", "center_raw", "center_smoothed"}
	if diff := cmp.Diff(wantHeader, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if got := len(records) - 1; got != 3 {
		t.Fatalf("rows = %d, want one per tick (3)", got)
	}

	// The dropped right wrist on tick 2 is exported with the estimator's
	// -1 convention.
	if got := records[2][2]; got != "-1" {
		t.Errorf("missing raw sample exported as %q, want -1", got)
	}
}

// TestSaveHistoryIdempotent: exporting twice with no ticks in between
// produces identical content.
func TestSaveHistoryIdempotent(t *testing.T) {
	clock := timeutil.NewFakeClock(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	session := sessionWithHistory(t, clock)
	dir := t.TempDir()

	first, err := session.SaveHistory(dir)
	if err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Second)
	second, err := session.SaveHistory(dir)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatal("timestamps must keep filenames distinct across runs")
	}
	if filepath.Base(first) != "repcount-20260830-100000.csv" {
		t.Errorf("unexpected filename %s", filepath.Base(first))
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(a), string(b)); diff != "" {
		t.Errorf("exports differ (-first +second):\n%s", diff)
	}
}

func TestSaveHistorySurfacesFailure(t *testing.T) {
	session := sessionWithHistory(t, nil)
	countBefore := session.Count()

	_, err := session.SaveHistory(filepath.Join(t.TempDir(), "no-such-dir"))
	if err == nil {
		t.Fatal("expected error for missing export directory")
	}
	if !strings.Contains(err.Error(), "create history file") {
		t.Errorf("unexpected error: %v", err)
	}
	if session.Count() != countBefore {
		t.Error("export failure must not affect the count")
	}
}
