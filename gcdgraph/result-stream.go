package gcdgraph

import (
	"fmt"
	"io"
	"strings"
)

// Solver computes the largest component size for a single Job.
type Solver interface {
	Solve(job *Job) (int, error)
}

// ResultStream is a pipeline stage: each stage consumes its upstream Outlet in its own goroutine
// and closes its own Outlet when the upstream is exhausted.
type ResultStream struct {
	Outlet chan *Result
}

func NewResultStream() *ResultStream {
	stream := &ResultStream{
		Outlet: make(chan *Result, 1),
	}
	return stream
}

// StreamJobs emits a pending Result for each given Job.
func StreamJobs(jobs ...Job) *ResultStream {
	next := NewResultStream()

	go func() {
		for _, job := range jobs {
			next.Outlet <- &Result{Job: job}
		}
		next.Close()
	}()

	return next
}

// EnumRanges emits an AllIntegers Job for each length in [from, to].
func EnumRanges(from, to int) *ResultStream {
	next := NewResultStream()

	go func() {
		for length := from; length <= to; length++ {
			next.Outlet <- &Result{
				Job: Job{
					Label:       fmt.Sprintf("1..%d", length),
					Length:      length,
					AllIntegers: true,
				},
			}
			if length == to {
				break
			}
		}
		next.Close()
	}()

	return next
}

// SelectFromCatalog emits every Result stored in the given Catalog.
func SelectFromCatalog(cat Catalog) *ResultStream {
	next := NewResultStream()

	go func() {
		cat.Select(next.Outlet)
		next.Close()
	}()

	return next
}

func (stream *ResultStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// PullAll drains the stream and returns the number of Results seen.
func (stream *ResultStream) PullAll() int {
	count := 0
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream and returns all Results in arrival order.
func (stream *ResultStream) Collect() []*Result {
	var results []*Result
	for res := range stream.Outlet {
		results = append(results, res)
	}
	return results
}

// Solve computes each Result's Size using the given Solver.
// If cat is non-nil, a stored result is used instead when available.
// Jobs that fail Validate are passed on with Err set and never reach cat.
func (stream *ResultStream) Solve(solver Solver, cat Catalog) *ResultStream {
	next := NewResultStream()

	go func() {
		for res := range stream.Outlet {
			if res.Err == nil {
				res.Err = res.Validate()
			}
			if res.Err == nil {
				if cat != nil {
					res.Size, res.Cached = cat.Lookup(&res.Job)
				}
				if !res.Cached {
					res.Size, res.Err = solver.Solve(&res.Job)
				}
			}
			next.Outlet <- res
		}
		next.Close()
	}()

	return next
}

// DropDupes passes only Results whose Job has not already been seen by the given set.
// The set is closed once the stream is exhausted.
func (stream *ResultStream) DropDupes(set JobSet) *ResultStream {
	next := NewResultStream()

	go func() {
		for res := range stream.Outlet {
			if set.TryAdd(&res.Job) {
				next.Outlet <- res
			}
		}
		set.Close()
		next.Close()
	}()

	return next
}

// AddTo stores each successful, non-cached Result in the given target.
// All Results are passed downstream.
func (stream *ResultStream) AddTo(target ResultAdder) *ResultStream {
	next := NewResultStream()

	go func() {
		for res := range stream.Outlet {
			if res.Err == nil && !res.Cached {
				target.TryAddResult(res)
			}
			next.Outlet <- res
		}
		next.Close()
	}()

	return next
}

func (stream *ResultStream) Print(
	out io.WriteCloser,
	opts PrintOpts) *ResultStream {

	next := NewResultStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for res := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			res.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- res
		}
		out.Close()
		next.Close()
	}()

	return next
}

// WriteAsString writes a single CSV-style line fragment describing this Result.
func (res *Result) WriteAsString(out io.Writer, opts PrintOpts) {
	label := res.Label
	if label == "" {
		if res.AllIntegers {
			label = fmt.Sprintf("1..%d", res.Length)
		} else {
			label = fmt.Sprintf("n=%d", res.Length)
		}
	}
	fmt.Fprintf(out, "%s,", label)

	if res.Err != nil {
		fmt.Fprintf(out, "error,%v", res.Err)
		return
	}
	fmt.Fprintf(out, "%d", res.Size)
	if res.Cached {
		io.WriteString(out, ",cached")
	}

	if opts.Values && !res.AllIntegers {
		io.WriteString(out, ",[")
		for i, v := range res.Inputs() {
			if i > 0 {
				io.WriteString(out, " ")
			}
			fmt.Fprintf(out, "%d", v)
		}
		io.WriteString(out, "]")
	}
}
