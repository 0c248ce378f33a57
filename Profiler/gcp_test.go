package Profiler

import (
	"os"
	"path/filepath"
	"testing"
)

const gcpFixture = `GCP survey export
project,shoreline monitoring
Name,Easting,Northing,Elevation
p1,385000.10,5770000.20,3.4
p2,notanumber,5770001.00,1.0
p3,385002.00,5770002.00,2.1
`

func writeGCPFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apo_20180912_gcps.csv")
	if err := os.WriteFile(path, []byte(gcpFixture), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindSkipRows(t *testing.T) {
	path := writeGCPFixture(t)
	n, err := FindSkipRows(path, "Easting")
	if err != nil {
		t.Fatalf("FindSkipRows error = %v", err)
	}
	if n != 2 {
		t.Errorf("FindSkipRows = %d, want 2", n)
	}

	if _, err := FindSkipRows(path, "NoSuchColumn"); err == nil {
		t.Error("expected error for missing keyword")
	}
}

func TestOpenGCPFile(t *testing.T) {
	path := writeGCPFixture(t)
	table, err := OpenGCPFile(path, 32754)
	if err != nil {
		t.Fatalf("OpenGCPFile error = %v", err)
	}
	if table.EPSG != 32754 {
		t.Errorf("EPSG = %d, want 32754", table.EPSG)
	}
	// 坐标非数值的行被跳过
	if len(table.Points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(table.Points))
	}
	if table.Points[0][0] != 385000.10 || table.Points[0][1] != 5770000.20 {
		t.Errorf("first point = %v", table.Points[0])
	}
}
