package pygcd

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/2x3systems/gcdgraph/gcdgraph"
	"github.com/2x3systems/gcdgraph/libgcd"
	"github.com/2x3systems/gcdgraph/libgcd/catalog"
	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
)

var (
	pyResultStreamType = py.NewType("ResultStream", "gcdgraph.ResultStream")
	pyCatalogType      = py.NewType("Catalog", "gcdgraph.Catalog")
	pyWorkspaceType    = py.NewType("Workspace", "collects active session resources and catalogs")
)

// pyError converts a gcdgraph error into the matching Python exception.
func pyError(err error) error {
	switch errors.Cause(err) {
	case gcdgraph.ErrInvalidLength, gcdgraph.ErrBadRange, gcdgraph.ErrBadValuesExpr:
		return py.ExceptionNewf(py.ValueError, "%v", err)
	case gcdgraph.ErrCatalogReadOnly:
		return py.ExceptionNewf(py.PermissionError, "%v", err)
	}
	return py.ExceptionNewf(py.RuntimeError, "%v", err)
}

// loadInts converts a Python sequence of ints, or a values expression string, into a []int.
func loadInts(obj py.Object) ([]int, error) {
	if expr, isStr := obj.(py.String); isStr {
		values, err := libgcd.ParseValues(string(expr))
		if err != nil {
			return nil, pyError(err)
		}
		return values, nil
	}

	var items []py.Object
	switch seq := obj.(type) {
	case py.Tuple:
		items = seq
	case *py.List:
		items = seq.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected a sequence of ints or a values string (got %v)", obj.Type().Name)
	}
	values := make([]int, len(items))
	for i, item := range items {
		v, err := py.GetInt(item)
		if err != nil {
			return nil, err
		}
		values[i] = int(v)
	}
	return values, nil
}

func loadInt(obj py.Object) (int, error) {
	v, err := py.GetInt(obj)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func solverFor(args py.Tuple, at int) (libgcd.Solver, error) {
	sv := libgcd.Solver{Opts: gcdgraph.DefaultBuildOpts}
	if len(args) > at {
		mode, err := loadInt(args[at])
		if err != nil {
			return sv, err
		}
		if mode != int(gcdgraph.EdgesPairwise) && mode != int(gcdgraph.EdgesFactorChain) {
			return sv, py.ExceptionNewf(py.ValueError, "unknown edge mode %d", mode)
		}
		sv.Opts.EdgeMode = gcdgraph.EdgeMode(mode)
	}
	return sv, nil
}

// Arg 1 (sequence or str): values
// Arg 2 (int, optional): length, defaults to len(values)
// Arg 3 (int, optional): edge mode
func py_LargestComponentSize(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "largest_component_size() requires values")
	}
	values, err := loadInts(args[0])
	if err != nil {
		return nil, err
	}
	length := len(values)
	if len(args) > 1 && args[1] != py.None {
		if length, err = loadInt(args[1]); err != nil {
			return nil, err
		}
	}
	sv, err := solverFor(args, 2)
	if err != nil {
		return nil, err
	}

	size, err := sv.LargestComponentSize(values, length)
	if err != nil {
		return nil, pyError(err)
	}
	return py.Int(size), nil
}

// Arg 1 (int): length
// Arg 2 (int, optional): edge mode
func py_LargestComponentSizeAllIntegers(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "largest_component_size_all_integers() requires length")
	}
	length, err := loadInt(args[0])
	if err != nil {
		return nil, err
	}
	sv, err := solverFor(args, 1)
	if err != nil {
		return nil, err
	}

	size, err := sv.LargestComponentSizeAllIntegers(length)
	if err != nil {
		return nil, pyError(err)
	}
	return py.Int(size), nil
}

func py_ComponentSizes(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "component_sizes() requires values")
	}
	values, err := loadInts(args[0])
	if err != nil {
		return nil, err
	}
	sv, err := solverFor(args, 1)
	if err != nil {
		return nil, err
	}
	sizes, err := sv.ComponentSizes(values)
	if err != nil {
		return nil, pyError(err)
	}
	return intsTuple(sizes), nil
}

func py_ParseValues(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	if err := py.LoadTuple(args, []interface{}{&expr}); err != nil {
		return nil, err
	}
	values, err := libgcd.ParseValues(expr)
	if err != nil {
		return nil, pyError(err)
	}
	return intsTuple(values), nil
}

func py_GCD(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) != 2 {
		return nil, py.ExceptionNewf(py.TypeError, "gcd() takes exactly 2 arguments (%d given)", len(args))
	}
	a, err := loadInt(args[0])
	if err != nil {
		return nil, err
	}
	b, err := loadInt(args[1])
	if err != nil {
		return nil, err
	}

	// gcd(MinInt, 0) is 2^63, one past the largest Int
	d := libgcd.GCD(a, b)
	if d > math.MaxInt64 {
		return (*py.BigInt)(new(big.Int).SetUint64(d)), nil
	}
	return py.Int(d), nil
}

func intsTuple(values []int) py.Tuple {
	tuple := make(py.Tuple, len(values))
	for i, v := range values {
		tuple[i] = py.Int(v)
	}
	return tuple
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx gcdgraph.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: gcdgraph.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): catalog pathname ("" for in-memory)
// Arg 2 (int, optional): flags (READ_ONLY)
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	var err error
	if len(args) > 1 {
		err = py.LoadTuple(args, []interface{}{&pathname, &flags})
	} else {
		err = py.LoadTuple(args, []interface{}{&pathname})
	}
	if err != nil {
		return nil, err
	}

	opts := gcdgraph.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, pyError(err)
	}

	return pyCatalog{cat}, nil
}

type pyCatalog struct {
	gcdgraph.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func py_Catalog_NumEntries(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.Int(cat.NumEntries()), nil
}

func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return wrapResultStream(gcdgraph.SelectFromCatalog(cat)), nil
}

type resultStream struct {
	*gcdgraph.ResultStream
}

func (stream resultStream) Type() *py.Type {
	return pyResultStreamType
}

func wrapResultStream(stream *gcdgraph.ResultStream) py.Object {
	return resultStream{stream}
}

// Arg 1 (int): first length
// Arg 2 (int): last length (inclusive)
func py_EnumRanges(module py.Object, args py.Tuple) (py.Object, error) {
	var from, to py.Object
	err := py.ParseTuple(args, "ii", &from, &to)
	if err != nil {
		return nil, err
	}
	return wrapResultStream(gcdgraph.EnumRanges(int(from.(py.Int)), int(to.(py.Int)))), nil
}

// Each arg is a sequence of ints or a values expression string.
func py_StreamValues(module py.Object, args py.Tuple) (py.Object, error) {
	jobs := make([]gcdgraph.Job, 0, len(args))
	for _, arg := range args {
		values, err := loadInts(arg)
		if err != nil {
			return nil, err
		}
		job := gcdgraph.Job{
			Values: values,
			Length: len(values),
		}
		if expr, isStr := arg.(py.String); isStr {
			job.Label = string(expr)
		}
		jobs = append(jobs, job)
	}
	return wrapResultStream(gcdgraph.StreamJobs(jobs...)), nil
}

// Arg 1 (int, optional): edge mode
// Arg 2 (Catalog, optional): catalog consulted before computing
func py_ResultStream_Solve(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	sv, err := solverFor(args, 0)
	if err != nil {
		return nil, err
	}
	var cat gcdgraph.Catalog
	if len(args) > 1 {
		pyCat, ok := args[1].(pyCatalog)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[1].Type().Name)
		}
		cat = pyCat.Catalog
	}
	return wrapResultStream(stream.Solve(sv, cat)), nil
}

func py_ResultStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	return wrapResultStream(stream.DropDupes(libgcd.NewJobSet())), nil
}

func py_ResultStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "AddTo() requires a Catalog")
	}
	cat, ok := args[0].(pyCatalog)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[0].Type().Name)
	}
	if cat.IsReadOnly() {
		return nil, pyError(gcdgraph.ErrCatalogReadOnly)
	}
	return wrapResultStream(stream.AddTo(cat)), nil
}

func py_ResultStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

// Results drains the stream into a tuple of (label, size) tuples; errored results have a size of None.
func py_ResultStream_Results(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	var out py.Tuple
	for _, res := range stream.Collect() {
		var size py.Object = py.None
		if res.Err == nil {
			size = py.Int(res.Size)
		}
		label := res.Label
		if label == "" && res.AllIntegers {
			label = fmt.Sprintf("1..%d", res.Length)
		}
		out = append(out, py.Tuple{py.String(label), size})
	}
	return out, nil
}

var gOutCount = int32(0)

// Print(label="", values=False, file="")
func py_ResultStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(resultStream)
	var pathname string

	opts := gcdgraph.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	outCount := atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", outCount)
	}

	py.LoadAttr(kwargs, "values", &opts.Values)
	py.LoadAttr(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapResultStream(next), nil
}
