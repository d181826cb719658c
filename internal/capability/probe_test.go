// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package capability

import (
	"errors"
	"testing"
)

// mockExecutor resolves only the binaries listed in bins.
type mockExecutor struct {
	bins map[string]bool
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.bins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		bins       map[string]bool
		wantOffice bool
		wantPath   string
	}{
		{
			name:       "soffice preferred",
			bins:       map[string]bool{"soffice": true, "libreoffice": true},
			wantOffice: true,
			wantPath:   "/usr/bin/soffice",
		},
		{
			name:       "libreoffice fallback",
			bins:       map[string]bool{"libreoffice": true},
			wantOffice: true,
			wantPath:   "/usr/bin/libreoffice",
		},
		{
			name: "no office suite installed",
			bins: map[string]bool{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := detect(&mockExecutor{bins: tt.bins})

			if s.OfficeEngine != tt.wantOffice {
				t.Errorf("OfficeEngine = %v, want %v", s.OfficeEngine, tt.wantOffice)
			}
			if s.OfficePath != tt.wantPath {
				t.Errorf("OfficePath = %q, want %q", s.OfficePath, tt.wantPath)
			}

			// Library-backed engines are compile-time facts.
			if !s.ImageCodec || !s.VectorWriter || !s.MergeEngine {
				t.Errorf("linked-library capabilities should probe true, got %+v", s)
			}
		})
	}
}

func TestDetectCached(t *testing.T) {
	first := Detect()
	second := Detect()
	if first != second {
		t.Errorf("Detect() not stable across calls: %+v vs %+v", first, second)
	}
}
