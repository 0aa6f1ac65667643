package marbling

import (
	"errors"
	"strings"
	"testing"
)

func TestConfig_ValidateDefault(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_ValidateMessage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detail = -4

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("Validate() = %v, want ErrInvalidConfiguration", err)
	}
	if !strings.Contains(err.Error(), "detail") || !strings.Contains(err.Error(), "-4") {
		t.Errorf("Validate() message %q does not name the field and value", err)
	}
}

func TestConfig_MatureThreshold(t *testing.T) {
	tests := []struct {
		name    string
		dropcap int
		mature  float64
		want    float64
	}{
		{"derived", 9, 0, 3},
		{"derived fractional", 10, 0, 10.0 / 3.0},
		{"explicit", 9, 5, 5},
		{"first marble", 9, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DropCap = tt.dropcap
			cfg.MatureAfter = tt.mature
			if got := cfg.MatureThreshold(); got != tt.want {
				t.Errorf("MatureThreshold() = %v, want %v", got, tt.want)
			}
		})
	}
}
