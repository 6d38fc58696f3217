package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentHalfUp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		amount  int
		percent float64
		want    int
	}{
		{"exact", 9900, 5, 495},
		{"half rounds up", 1030, 5, 52},
		{"just below half rounds down", 1029, 5, 51},
		{"zero amount", 0, 5, 0},
		{"zero percent", 12345, 0, 0},
		{"deposit thirty percent", 46500, 30, 13950},
		{"deposit with half cent", 1015, 30, 305},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, PercentHalfUp(tc.amount, tc.percent))
		})
	}
}
