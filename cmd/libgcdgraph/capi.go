package main

import (
	"math"

	"github.com/2x3systems/gcdgraph/libgcd"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// cError is what the exported functions return on invalid input.
const cError = -1

var errNilArray = errors.New("array is NULL but length > 0")

var checkLength = libgcd.CheckLength

// widen copies C ints into the []int the library works on, so the caller's array is never retained.
func widen(src []int32) []int {
	nums := make([]int, len(src))
	for i, v := range src {
		nums[i] = int(v)
	}
	return nums
}

func reportInvalid(err error) int {
	klog.Warningf("libgcdgraph: %v", err)
	return cError
}

// clampResult keeps a size within the C int range; sizes never exceed MaxLength so this only guards the conversion.
func clampResult(size int) int {
	if size > math.MaxInt32 {
		return math.MaxInt32
	}
	return size
}

func largestComponentSize(src []int32, length int) int {
	if err := checkLength(length); err != nil {
		return reportInvalid(err)
	}
	size, err := libgcd.LargestComponentSize(widen(src), length)
	if err != nil {
		return reportInvalid(err)
	}
	return clampResult(size)
}

func largestComponentSizeAllIntegers(length int) int {
	size, err := libgcd.LargestComponentSizeAllIntegers(length)
	if err != nil {
		return reportInvalid(err)
	}
	return clampResult(size)
}
