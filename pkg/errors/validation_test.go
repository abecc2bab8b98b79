package errors

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/pairquest/pkg/geom"
)

func TestValidatePoints(t *testing.T) {
	tests := []struct {
		name    string
		input   []geom.Point
		wantErr bool
	}{
		{"empty", nil, false},
		{"finite", []geom.Point{geom.Pt(1, 2), geom.Pt(-3, 4.5)}, false},
		{"nan x", []geom.Point{geom.Pt(1, 2), geom.Pt(math.NaN(), 0)}, true},
		{"inf y", []geom.Point{geom.Pt(0, math.Inf(-1))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePoints(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePoints() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPoints) {
				t.Errorf("ValidatePoints() code = %v", GetCode(err))
			}
		})
	}
}

func TestValidateMinPoints(t *testing.T) {
	if err := ValidateMinPoints([]geom.Point{geom.Pt(0, 0)}); !Is(err, ErrCodeNotEnoughPoints) {
		t.Errorf("single point: got %v", err)
	}
	if err := ValidateMinPoints([]geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}); err != nil {
		t.Errorf("two points: got %v", err)
	}
}

func TestValidateChoice(t *testing.T) {
	allowed := []string{"svg", "html"}
	if err := ValidateChoice(ErrCodeInvalidFormat, "format", "svg", allowed); err != nil {
		t.Errorf("valid choice: %v", err)
	}
	err := ValidateChoice(ErrCodeInvalidFormat, "format", "gif", allowed)
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("invalid choice: got %v", err)
	}
	if !strings.Contains(err.Error(), "svg, html") {
		t.Errorf("message should list choices: %s", err)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "out.html", false},
		{"nested", "renders/out.svg", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "out\x00.svg", true},
		{"newline", "out\n.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
