package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/quickreturn/internal/linkage"
	"github.com/san-kum/quickreturn/internal/sweep"
)

func testResult(t *testing.T, samples int) *sweep.Result {
	t.Helper()
	cfg := linkage.Config{
		Geometry: linkage.Geometry{R1: 0.025, R2: 0.010, R4: 0.065, R5: 0.030, R7: 0.040, Theta1: math.Pi / 2},
		Omega2:   -15.0,
		Samples:  samples,
	}
	res, err := sweep.Run(context.Background(), cfg, sweep.Options{Workers: 1})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := testResult(t, 12)
	runID, err := st.Save("test", res, map[string]float64{"stroke": 0.052})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", meta.Name)
	}
	if meta.R4 != 0.065 || meta.Omega2 != -15.0 || meta.Samples != 12 {
		t.Errorf("geometry not recorded: %+v", meta)
	}
	if meta.Metrics["stroke"] != 0.052 {
		t.Errorf("expected stroke 0.052, got %f", meta.Metrics["stroke"])
	}

	rows, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(rows))
	}

	r6 := Column("r6")
	if rows[3][r6] != res.Samples[3].R6 {
		t.Errorf("r6 did not round trip: %v vs %v", rows[3][r6], res.Samples[3].R6)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	res := testResult(t, 4)
	if _, err := st.Save("a", res, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save("b", res, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Name != "a" || runs[1].Name != "b" {
		t.Errorf("expected runs in save order, got %s, %s", runs[0].Name, runs[1].Name)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("test", testResult(t, 4), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, samplesFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	runID, err := st.Save("export", testResult(t, 6), map[string]float64{"time_ratio": 1.71})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run.ID != runID {
		t.Errorf("expected id %s, got %s", runID, data.Run.ID)
	}
	if len(data.Rows) != 6 || len(data.Columns) != len(Columns) {
		t.Errorf("unexpected shape: %d rows, %d columns", len(data.Rows), len(data.Columns))
	}
}

func TestWriteCSV(t *testing.T) {
	res := testResult(t, 4)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, res); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header and 4 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(Columns, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,0,") {
		t.Errorf("first row = %q", lines[1])
	}
}
