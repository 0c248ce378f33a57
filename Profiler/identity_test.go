package Profiler

import (
	"strings"
	"testing"
)

func TestCreateIDDeterministic(t *testing.T) {
	a := CreateID(12.5, 3, "apo", 385812.34, "2018-09-12")
	b := CreateID(12.5, 3, "apo", 385812.34, "2018-09-12")
	if a != b {
		t.Errorf("CreateID not deterministic: %q vs %q", a, b)
	}
	if a == "" {
		t.Fatal("CreateID returned empty string")
	}
	if strings.ContainsAny(a, ".-") {
		t.Errorf("CreateID %q still contains '.' or '-'", a)
	}
}

func TestCreateIDVariesWithAttributes(t *testing.T) {
	base := CreateID(12.5, 3, "apo", 385812.34, "2018-09-12")
	other := CreateID(13.5, 3, "apo", 385812.34, "2018-09-12")
	if base == other {
		t.Errorf("different distances produced the same id %q", base)
	}
}

func TestCreateSpatialIDIgnoresDate(t *testing.T) {
	a := CreateSpatialID(7.0, 2, "leo")
	b := CreateSpatialID(7.0, 2, "leo")
	if a != b {
		t.Errorf("CreateSpatialID not deterministic: %q vs %q", a, b)
	}
	if strings.ContainsAny(a, ".-") {
		t.Errorf("CreateSpatialID %q still contains '.' or '-'", a)
	}
}
