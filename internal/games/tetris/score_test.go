package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name    string
		current int
		locked  bool
		rows    int
		want    int
	}{
		{"nothing happened", 0, false, 0, 0},
		{"lock only", 0, true, 0, 25},
		{"lock and two rows", 100, true, 2, 325},
		{"tetris", 1000, true, 4, 1425},
		{"rows without lock", 0, false, 3, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateScore(tc.current, tc.locked, tc.rows))
		})
	}
}
