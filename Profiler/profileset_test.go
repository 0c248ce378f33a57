package Profiler

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
)

func samplePoints(prefix string, n int) []SamplePoint {
	rows := make([]SamplePoint, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, SamplePoint{
			PointID:     prefix + string(rune('a'+i)),
			Location:    "apo",
			RawDate:     "20180912",
			TrID:        i,
			Distance:    float64(i),
			Coordinates: orb.Point{float64(i), 0},
			Z:           float64(i) * 2,
			Band1:       math.NaN(),
			Band2:       math.NaN(),
			Band3:       math.NaN(),
		})
	}
	return rows
}

func TestMergeProfiles(t *testing.T) {
	dsm := samplePoints("p", 3)
	ortho := samplePoints("p", 3)
	for i := range ortho {
		ortho[i].Z = math.NaN()
		ortho[i].Band1 = 10
		ortho[i].Band2 = 20
		ortho[i].Band3 = 30
	}

	merged, err := MergeProfiles(dsm, ortho)
	if err != nil {
		t.Fatalf("MergeProfiles error = %v", err)
	}
	if len(merged) != 3 {
		t.Fatalf("len(merged) = %d, want 3", len(merged))
	}
	for i, r := range merged {
		if r.Z != float64(i)*2 {
			t.Errorf("row %d z = %v, want %v", i, r.Z, float64(i)*2)
		}
		if r.Band1 != 10 || r.Band2 != 20 || r.Band3 != 30 {
			t.Errorf("row %d bands = %v %v %v", i, r.Band1, r.Band2, r.Band3)
		}
	}
}

func TestMergeProfilesSchemaErrors(t *testing.T) {
	dsm := samplePoints("p", 3)

	if _, err := MergeProfiles(dsm, samplePoints("p", 2)); err == nil {
		t.Error("expected error for length mismatch")
	}

	other := samplePoints("q", 3)
	if _, err := MergeProfiles(dsm, other); err == nil {
		t.Error("expected error for missing point ids")
	}

	dup := samplePoints("p", 3)
	dup[2].PointID = dup[0].PointID
	if _, err := MergeProfiles(dsm, dup); err == nil {
		t.Error("expected error for duplicate point ids")
	}

	// dsm侧键重复时两行会命中同一ortho行，也必须报错
	dsmDup := samplePoints("p", 3)
	dsmDup[1].PointID = dsmDup[0].PointID
	if _, err := MergeProfiles(dsmDup, samplePoints("p", 3)); err == nil {
		t.Error("expected error for duplicate point ids on the dsm side")
	}
}

func TestNewProfileSetCheckMode(t *testing.T) {
	dsmDir, orthoDir, transDir := t.TempDir(), t.TempDir(), t.TempDir()

	if _, err := NewProfileSet(dsmDir, orthoDir, transDir, "elevation", nil); err == nil {
		t.Error("expected error for invalid check mode")
	}

	ps, err := NewProfileSet(dsmDir, orthoDir, transDir, "all", testSpecs())
	if err != nil {
		t.Fatalf("NewProfileSet error = %v", err)
	}
	if len(ps.Check) != 0 {
		t.Errorf("len(check) = %d, want 0 for empty folders", len(ps.Check))
	}
}

func TestProfileSetSaveLoad(t *testing.T) {
	ps := &ProfileSet{
		DSMDir:      "/data/dsm",
		OrthoDir:    "/data/ortho",
		TransectDir: "/data/transects",
		CheckMode:   "all",
		Specs:       testSpecs(),
		Profiles:    samplePoints("p", 3),
		Counts:      map[string]int{"apo": 3},
	}
	path := filepath.Join(t.TempDir(), "session.bin")
	if err := ps.Save(path); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	loaded, err := LoadProfileSet(path)
	if err != nil {
		t.Fatalf("LoadProfileSet error = %v", err)
	}
	if loaded.DSMDir != ps.DSMDir || loaded.CheckMode != ps.CheckMode {
		t.Errorf("loaded session = %+v", loaded)
	}
	if len(loaded.Profiles) != 3 {
		t.Fatalf("len(profiles) = %d, want 3", len(loaded.Profiles))
	}
	if loaded.Profiles[1].PointID != ps.Profiles[1].PointID {
		t.Errorf("point id = %q, want %q", loaded.Profiles[1].PointID, ps.Profiles[1].PointID)
	}
	if !math.IsNaN(loaded.Profiles[0].Band1) {
		t.Errorf("band1 = %v, want NaN", loaded.Profiles[0].Band1)
	}
	if loaded.Counts["apo"] != 3 {
		t.Errorf("counts = %v", loaded.Counts)
	}
}

func TestExtractProfilesInvalidLodMode(t *testing.T) {
	ps := &ProfileSet{
		DSMDir:      t.TempDir(),
		OrthoDir:    t.TempDir(),
		TransectDir: t.TempDir(),
		Specs:       testSpecs(),
	}
	// 空目录提取为空表，lod参数既非数字也非目录时报错
	if err := ps.ExtractProfiles("dsm", TrIDReset, 1.0, "no/such/lod", false, false, -10000); err == nil {
		t.Error("expected error for invalid lod mode")
	}
	if err := ps.ExtractProfiles("dsm", TrIDReset, 1.0, "1.5", false, false, -10000); err != nil {
		t.Errorf("numeric lod mode error = %v", err)
	}
	if !ps.HasThreshold || ps.LODThreshold != 1.5 {
		t.Errorf("lod threshold = %v (has=%v), want 1.5", ps.LODThreshold, ps.HasThreshold)
	}
}

func TestLodOptionsKeepRastersSwapTransects(t *testing.T) {
	dsmOpt := ExtractOptions{
		DatasetFolder: "/data/dsm",
		TransectPath:  "/data/transects",
		TrIDField:     TrIDReset,
		Mode:          "dsm",
		Step:          1,
		AddSlope:      true,
		Specs:         testSpecs(),
	}

	// LOD目录装的是断面集，栅格仍然来自DSM目录
	opt := lodOptions(dsmOpt, "/data/lod_transects")
	if opt.DatasetFolder != "/data/dsm" {
		t.Errorf("dataset folder = %s, want /data/dsm", opt.DatasetFolder)
	}
	if opt.TransectPath != "/data/lod_transects" {
		t.Errorf("transect path = %s, want /data/lod_transects", opt.TransectPath)
	}
	if opt.AddSlope {
		t.Error("lod pass should not compute slope")
	}
	if opt.Mode != "dsm" {
		t.Errorf("mode = %s, want dsm", opt.Mode)
	}
}

func TestExtractProfilesLodDirectory(t *testing.T) {
	ps := &ProfileSet{
		DSMDir:      t.TempDir(),
		OrthoDir:    t.TempDir(),
		TransectDir: t.TempDir(),
		Specs:       testSpecs(),
	}
	lodDir := t.TempDir()
	if err := ps.ExtractProfiles("dsm", TrIDReset, 1.0, lodDir, false, false, -10000); err != nil {
		t.Fatalf("ExtractProfiles error = %v", err)
	}
	if ps.HasThreshold {
		t.Error("directory lod mode must not set a numeric threshold")
	}
	if len(ps.LODProfiles) != 0 {
		t.Errorf("len(lod profiles) = %d, want 0 for empty folders", len(ps.LODProfiles))
	}
}
