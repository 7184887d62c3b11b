package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"100.50", 100.5, false},
		{" 1 ", 1, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.InDelta(t, tc.want, got, 1e-9)
	}
}

func TestParseBalanceAllowsNonPositive(t *testing.T) {
	t.Parallel()

	v, err := ParseBalance("-250.50")
	require.NoError(t, err)
	require.InDelta(t, -250.5, v, 1e-9)

	v, err = ParseBalance("0")
	require.NoError(t, err)
	require.Zero(t, v)

	_, err = ParseBalance("five hundred")
	require.Error(t, err)
}

func TestFormatUsesIndianGrouping(t *testing.T) {
	t.Parallel()

	require.Equal(t, "₹1,000.00", Format("₹", 1000))
	require.Equal(t, "₹1,00,000.00", Format("₹", 100000))
	require.Equal(t, "₹750.50", Format("₹", 750.50))
}
