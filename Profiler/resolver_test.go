package Profiler

import (
	"testing"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    string
		wantErr bool
	}{
		{"eight digit date", "apo_20180912_dsm_ahd.tiff", "20180912", false},
		{"date wins over smaller numbers", "zone_55_apo_20180912_dsm.tiff", "20180912", false},
		{"textual date", "Seaspray_22_Oct_2020_GeoTIFF_DSM_GDA94_MGA_zone_55.tiff", "20201022", false},
		{"textual sept", "leo_01_Sept_2019_ortho.tif", "20190901", false},
		{"no date", "apo_dsm_ahd.tiff", "", true},
		{"digits but not a date", "apo_123_dsm.tiff", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDate(tt.file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractDate(%q) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractDate(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func testSpecs() []LocationSpec {
	return []LocationSpec{
		{Code: "wbl", Search: []string{"Warrnambool", "warrnambool", "wbl"}, EPSG: 32754},
		{Code: "apo", Search: []string{"Apollo", "apo"}, EPSG: 32754},
		{Code: "leo", Search: []string{"StLeonards", "leo"}, EPSG: 32755},
	}
}

func TestResolveLocationExact(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"apo_20180912_dsm_ahd.tiff", "apo"},
		{"/data/transects/Warrnambool_22_Oct_2020_dsm.tiff", "wbl"},
		{"leo_20180606_ortho.tif", "leo"},
	}
	for _, tt := range tests {
		got, err := ResolveLocation(tt.file, testSpecs())
		if err != nil {
			t.Fatalf("ResolveLocation(%q) error = %v", tt.file, err)
		}
		if got.Code != tt.want || got.Fuzzy {
			t.Errorf("ResolveLocation(%q) = %+v, want exact %s", tt.file, got, tt.want)
		}
	}
}

func TestResolveLocationFuzzy(t *testing.T) {
	got, err := ResolveLocation("warnambol_20180601_dsm.tif", testSpecs())
	if err != nil {
		t.Fatalf("ResolveLocation error = %v", err)
	}
	if !got.Fuzzy {
		t.Fatalf("expected fuzzy match, got %+v", got)
	}
	if got.Code != "wbl" {
		t.Errorf("fuzzy match code = %s, want wbl", got.Code)
	}
	if got.Score <= 0 || got.Score > 100 {
		t.Errorf("fuzzy score out of range: %d", got.Score)
	}
}

func TestResolveLocationNoSpecs(t *testing.T) {
	if _, err := ResolveLocation("apo_20180912_dsm.tif", nil); err == nil {
		t.Fatal("expected error with no location specs")
	}
}

func TestExtractLocDate(t *testing.T) {
	loc, date, err := ExtractLocDate("apo_20180912_dsm_ahd.tiff", testSpecs())
	if err != nil {
		t.Fatalf("ExtractLocDate error = %v", err)
	}
	if loc.Code != "apo" || date != "20180912" {
		t.Errorf("ExtractLocDate = (%s, %s), want (apo, 20180912)", loc.Code, date)
	}
}
