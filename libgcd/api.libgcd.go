package libgcd

import (
	"github.com/2x3systems/gcdgraph/gcdgraph"
	"github.com/plan-systems/klog"
)

var (
	LIB_VERSION = "v1.2026.1"
)

// LargestComponentSize returns the size of the largest connected component of the gcd graph over values[:length].
func LargestComponentSize(values []int, length int) (int, error) {
	return Solver{Opts: gcdgraph.DefaultBuildOpts}.LargestComponentSize(values, length)
}

// LargestComponentSizeAllIntegers is equivalent to LargestComponentSize([1, 2, .. length], length)
// but never requires the caller to materialize the input.
func LargestComponentSizeAllIntegers(length int) (int, error) {
	return Solver{Opts: gcdgraph.DefaultBuildOpts}.LargestComponentSizeAllIntegers(length)
}

// Solver builds and counts gcd graphs using the given BuildOpts.
// It holds no state across calls and is safe to share.
type Solver struct {
	Opts gcdgraph.BuildOpts
}

func (sv Solver) LargestComponentSize(values []int, length int) (int, error) {
	job := gcdgraph.Job{
		Values: values,
		Length: length,
	}
	if err := job.Validate(); err != nil {
		return 0, err
	}
	return sv.largest(values[:length]), nil
}

func (sv Solver) LargestComponentSizeAllIntegers(length int) (int, error) {
	if err := CheckLength(length); err != nil {
		return 0, err
	}
	job := gcdgraph.Job{
		Length:      length,
		AllIntegers: true,
	}
	return sv.largest(job.Inputs()), nil
}

// Solve implements gcdgraph.Solver
func (sv Solver) Solve(job *gcdgraph.Job) (int, error) {
	if job.AllIntegers {
		return sv.LargestComponentSizeAllIntegers(job.Length)
	}
	return sv.LargestComponentSize(job.Values, job.Length)
}

// ComponentSizes returns every component size of the gcd graph over values, in discovery order.
func (sv Solver) ComponentSizes(values []int) ([]int, error) {
	if err := CheckLength(len(values)); err != nil {
		return nil, err
	}
	return ComponentSizes(BuildGraph(values, sv.Opts)), nil
}

func (sv Solver) largest(nums []int) int {
	adj := BuildGraph(nums, sv.Opts)
	largest := LargestComponent(adj)

	klog.V(2).Infof("gcd graph (%v): %d nodes, %d edges, largest component %d", sv.Opts.EdgeMode, adj.NumNodes(), adj.NumEdges(), largest)
	return largest
}

// CheckLength returns gcdgraph.ErrInvalidLength if length is negative or exceeds gcdgraph.MaxLength.
func CheckLength(length int) error {
	return gcdgraph.CheckLength(length)
}
