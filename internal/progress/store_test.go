package progress

import (
	"testing"

	"github.com/studybuddy/backend/internal/models"
)

func TestMasteryLevel(t *testing.T) {
	tests := []struct {
		average float64
		want    string
	}{
		{0, models.MasteryBeginner},
		{69.9, models.MasteryBeginner},
		{70, models.MasteryIntermediate},
		{89.9, models.MasteryIntermediate},
		{90, models.MasteryAdvanced},
		{100, models.MasteryAdvanced},
	}
	for _, tt := range tests {
		if got := masteryLevel(tt.average); got != tt.want {
			t.Errorf("masteryLevel(%v) = %q, want %q", tt.average, got, tt.want)
		}
	}
}
