package validation

import (
	"errors"
	"strings"
	"testing"
)

type clusterSettings struct {
	Algorithm  string  `yaml:"algorithm" validate:"required,oneof=louvain deterministic"`
	Resolution float64 `yaml:"resolution" validate:"gt=0"`
	Workers    int     `toml:"workers" validate:"gte=0,lte=256"`
	Internal   string  `validate:"omitempty,max=3"`
}

func TestStruct(t *testing.T) {
	valid := clusterSettings{Algorithm: "louvain", Resolution: 0.8}

	tests := []struct {
		name    string
		mutate  func(s *clusterSettings)
		wantErr string
	}{
		{"valid", func(s *clusterSettings) {}, ""},
		{"missing algorithm", func(s *clusterSettings) { s.Algorithm = "" }, "algorithm: field is required"},
		{"unknown algorithm", func(s *clusterSettings) { s.Algorithm = "kmeans" }, "algorithm: must be one of [louvain, deterministic]"},
		{"zero resolution", func(s *clusterSettings) { s.Resolution = 0 }, "resolution: must be greater than 0"},
		{"negative workers", func(s *clusterSettings) { s.Workers = -1 }, "workers: must be at least 0"},
		{"too many workers", func(s *clusterSettings) { s.Workers = 1000 }, "workers: must not exceed 256"},
		{"untagged field uses Go name", func(s *clusterSettings) { s.Internal = "long" }, "Internal: must not exceed 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := Struct(&s)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Struct() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	var s *clusterSettings
	if err := Struct(s); !errors.Is(err, ErrNilStruct) {
		t.Errorf("Struct(nil ptr) = %v, want ErrNilStruct", err)
	}
	if err := Struct(nil); !errors.Is(err, ErrNilStruct) {
		t.Errorf("Struct(nil) = %v, want ErrNilStruct", err)
	}
}

func TestVar(t *testing.T) {
	if err := Var("log_format", "json", "oneof=json text"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := Var("log_format", "xml", "oneof=json text")
	if err == nil || !strings.HasPrefix(err.Error(), "log_format: must be one of") {
		t.Errorf("Var() = %v", err)
	}
}

func TestFormatValidationError_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("plain")
	if got := formatValidationError(plain); got != plain {
		t.Errorf("formatValidationError() = %v, want plain error unchanged", got)
	}
	if formatValidationError(nil) != nil {
		t.Error("formatValidationError(nil) should be nil")
	}
}
