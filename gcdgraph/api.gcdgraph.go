package gcdgraph

const (

	// MaxLength is the largest input length accepted by the entry points.
	// Pairwise edge construction is O(n^2), so anything above this is rejected before allocation.
	MaxLength = 1 << 20
)

// EdgeMode selects how a Graph Builder derives edges from the input values.
type EdgeMode int32

const (

	// EdgesPairwise compares every pair of input positions and inserts both directed edges when gcd > 1.
	EdgesPairwise EdgeMode = iota

	// EdgesFactorChain groups values by prime factor and chains the members of each group.
	// Components (and so the largest component size) match EdgesPairwise but far fewer edges are stored.
	EdgesFactorChain
)

func (mode EdgeMode) String() string {
	switch mode {
	case EdgesPairwise:
		return "pairwise"
	case EdgesFactorChain:
		return "factor-chain"
	}
	return "unknown"
}

// BuildOpts specifies params for building an AdjacencyMap
type BuildOpts struct {
	EdgeMode EdgeMode
}

// DefaultBuildOpts builds the reference pairwise graph.
var DefaultBuildOpts = BuildOpts{
	EdgeMode: EdgesPairwise,
}

// Counter computes largest connected component sizes of gcd graphs.
type Counter interface {

	// LargestComponentSize returns the largest component size over values[:length].
	LargestComponentSize(values []int, length int) (int, error)

	// LargestComponentSizeAllIntegers is equivalent to LargestComponentSize over [1, 2, .. length].
	LargestComponentSizeAllIntegers(length int) (int, error)
}

// Job is one largest-component computation.
// When AllIntegers is set, Values is ignored and the input is [1..Length].
type Job struct {
	Label       string
	Values      []int
	Length      int
	AllIntegers bool
}

// Result is a Job paired with its outcome.
type Result struct {
	Job
	Size   int
	Err    error
	Cached bool // set if Size came from a Catalog
}

// Inputs returns the values the Job describes, materializing [1..Length] for an AllIntegers Job.
// The caller must call Validate first; an invalid Length yields all of Values.
func (job *Job) Inputs() []int {
	if !job.AllIntegers {
		if job.Length >= 0 && job.Length <= len(job.Values) {
			return job.Values[:job.Length]
		}
		return job.Values
	}
	nums := make([]int, job.Length)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// OnResult is a channel used to return Results from a Catalog.
// Ownership of a Result also travels through the channel.
type OnResult chan<- *Result

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a result Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

type ResultAdder interface {

	// Tries to add the given result to this catalog.
	// If true is returned, the job's key did not exist and was added.
	TryAddResult(res *Result) bool
}

// Catalog wraps a database of previously computed results.
type Catalog interface {
	ResultAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// Lookup returns the stored size for the given job, if any.
	Lookup(job *Job) (size int, found bool)

	// NumEntries returns the number of results stored in this catalog.
	NumEntries() int64

	// Select sends every stored result to onHit, in key order.
	Select(onHit OnResult)

	Close() error
}

// JobSet allows adding of Jobs to an internal set and returning if an equivalent Job has already been added.
type JobSet interface {

	// TryAdd adds the given Job's key if it is not already present.
	//
	// If an equivalent Job already is in this JobSet, false is returned and this call has no effect.
	TryAdd(job *Job) bool

	// Close removes all previously added items from this set.
	Close()
}

// PrintOpts specifies what is printed for each Result
type PrintOpts struct {
	Label  string // Prefix label
	Values bool   // If set, the input values are printed (AllIntegers jobs print their range)
}

var DefaultPrintOpts = PrintOpts{}
