package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWiden(t *testing.T) {
	src := []int32{-7, 0, 2147483647, -2147483648}
	nums := widen(src)
	require.Equal(t, []int{-7, 0, 2147483647, -2147483648}, nums)

	nums[0] = 99
	require.EqualValues(t, -7, src[0])
}

func TestLargestComponentSizeABI(t *testing.T) {
	require.Equal(t, 0, largestComponentSize(nil, 0))
	require.Equal(t, 1, largestComponentSize([]int32{7}, 1))
	require.Equal(t, 2, largestComponentSize([]int32{2, 3, 4}, 3))
	require.Equal(t, 4, largestComponentSize([]int32{2, 4, 6, 8}, 4))
	require.Equal(t, 1, largestComponentSize([]int32{2, 3, 5, 7}, 4))

	require.Equal(t, cError, largestComponentSize(nil, -1))
	require.Equal(t, cError, largestComponentSize([]int32{2}, 2))
}

func TestAllIntegersABI(t *testing.T) {
	require.Equal(t, 0, largestComponentSizeAllIntegers(0))
	require.Equal(t, 1, largestComponentSizeAllIntegers(1))
	require.Equal(t, largestComponentSize([]int32{1, 2, 3, 4, 5, 6}, 6), largestComponentSizeAllIntegers(6))
	require.Equal(t, cError, largestComponentSizeAllIntegers(-3))
}
