package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/johnxnguyen/newton/internal/geometry"
	"github.com/johnxnguyen/newton/internal/metrics"
	"github.com/johnxnguyen/newton/internal/physics"
)

func observedMetrics(t *testing.T, frames int) []metrics.Metric {
	t.Helper()
	f := physics.NewField(1.0, 1.0, 0)
	if err := f.AddBody(0, 1, geometry.Point{X: 1}, geometry.Vector{DY: 1}); err != nil {
		t.Fatal(err)
	}

	ms := []metrics.Metric{metrics.NewEnergy(), metrics.NewMomentum()}
	for frame := 0; frame < frames; frame++ {
		f.Step()
		for _, m := range ms {
			m.Observe(f, frame)
		}
	}
	return ms
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	meta := RunMetadata{
		ID:        "run",
		Timestamp: time.Now().UTC(),
		Config:    "galaxy",
		Seed:      42,
		Frames:    5,
		Bodies:    1,
		G:         1.0,
		Theta:     0.5,
		Dt:        1.0,
	}

	ms := observedMetrics(t, 5)
	if err := st.Save(meta, ms); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != "run" || loaded.Seed != 42 || loaded.Frames != 5 {
		t.Errorf("metadata round trip lost fields: %+v", loaded)
	}
	if _, ok := loaded.Metrics["energy"]; !ok {
		t.Error("final metric values not recorded")
	}
}

func TestLoadHistory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	ms := observedMetrics(t, 8)
	if err := st.Save(RunMetadata{ID: "run"}, ms); err != nil {
		t.Fatal(err)
	}

	history, err := st.LoadHistory()
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}

	for _, m := range ms {
		col, ok := history[m.Name()]
		if !ok {
			t.Fatalf("column %q missing", m.Name())
		}
		if len(col) != 8 {
			t.Fatalf("column %q has %d rows, want 8", m.Name(), len(col))
		}
		for i, v := range m.History() {
			if math.Abs(col[i]-v) > 1e-12 {
				t.Errorf("%s[%d] = %v, want %v", m.Name(), i, col[i], v)
			}
		}
	}
}

func TestList(t *testing.T) {
	parent := t.TempDir()

	for _, id := range []string{"a", "b"} {
		st := New(filepath.Join(parent, id))
		if err := st.Init(); err != nil {
			t.Fatal(err)
		}
		if err := st.Save(RunMetadata{ID: id}, nil); err != nil {
			t.Fatal(err)
		}
	}

	// a directory without metadata is skipped
	if err := os.MkdirAll(filepath.Join(parent, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := List(parent)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("listed %d runs, want 2", len(runs))
	}
}

func TestListMissingParent(t *testing.T) {
	runs, err := List(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing parent should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
