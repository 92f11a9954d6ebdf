package libgcd_test

import (
	"testing"

	"github.com/2x3systems/gcdgraph/gcdgraph"
	"github.com/2x3systems/gcdgraph/libgcd"
	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	cases := []struct {
		expr string
		want []int
	}{
		{"", nil},
		{"7", []int{7}},
		{"2, 3, 4", []int{2, 3, 4}},
		{"1..4, 9, -6", []int{1, 2, 3, 4, 9, -6}},
		{"-2..2", []int{-2, -1, 0, 1, 2}},
		{"5..5", []int{5}},
		{" 10 ,\n20 ", []int{10, 20}},
	}
	for _, tc := range cases {
		got, err := libgcd.ParseValues(tc.expr)
		require.NoError(t, err, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestParseValuesErrors(t *testing.T) {
	_, err := libgcd.ParseValues("4..1")
	require.ErrorIs(t, err, gcdgraph.ErrBadRange)

	for _, expr := range []string{"1,,2", "a", "1..", "1 2", "99999999999999999999"} {
		_, err = libgcd.ParseValues(expr)
		require.ErrorIs(t, err, gcdgraph.ErrBadValuesExpr, expr)
	}

	_, err = libgcd.ParseValues("1..2000000")
	require.ErrorIs(t, err, gcdgraph.ErrInvalidLength)
}

func TestParsedValuesSolve(t *testing.T) {
	values, err := libgcd.ParseValues("1..6")
	require.NoError(t, err)

	got, err := libgcd.LargestComponentSize(values, len(values))
	require.NoError(t, err)
	want, err := libgcd.LargestComponentSizeAllIntegers(6)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
