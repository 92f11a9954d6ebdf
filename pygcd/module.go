package pygcd

import (
	"io"
	"os"

	"github.com/2x3systems/gcdgraph/gcdgraph"
	"github.com/2x3systems/gcdgraph/libgcd"
	"github.com/go-python/gpython/py"
)

// ModuleName is the name scripts import, e.g. `import _gcdgraph`.
const ModuleName = "_gcdgraph"

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

func init() {

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["NumEntries"] = py.MustNewMethod("NumEntries", py_Catalog_NumEntries, 0, "returns the number of results stored in this catalog")
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "streams every stored result")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	/////////////////////////////////
	// ResultStream
	{
		pyResultStreamType.Dict["Go"] = py.MustNewMethod("Go", py_ResultStream_Go, 0, "drains the stream and returns the number of results")
		pyResultStreamType.Dict["Results"] = py.MustNewMethod("Results", py_ResultStream_Results, 0, "drains the stream into a tuple of (label, size)")
		pyResultStreamType.Dict["Print"] = py.MustNewMethod("Print", py_ResultStream_Print, 0, "prints each result from the stream")
		pyResultStreamType.Dict["Solve"] = py.MustNewMethod("Solve", py_ResultStream_Solve, 0, "computes each result's largest component size")
		pyResultStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_ResultStream_DropDupes, 0, "")
		pyResultStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_ResultStream_AddTo, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("largest_component_size", py_LargestComponentSize, 0, "largest_component_size(values, length=None, mode=0) -> int"),
			py.MustNewMethod("largest_component_size_all_integers", py_LargestComponentSizeAllIntegers, 0, "largest_component_size_all_integers(length, mode=0) -> int"),
			py.MustNewMethod("component_sizes", py_ComponentSizes, 0, "component_sizes(values, mode=0) -> tuple"),
			py.MustNewMethod("parse_values", py_ParseValues, 0, "parse_values(expr) -> tuple"),
			py.MustNewMethod("gcd", py_GCD, 0, "gcd(a, b) -> int"),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
			py.MustNewMethod("EnumRanges", py_EnumRanges, 0, "EnumRanges(from, to) -> ResultStream over [1..n] for each n"),
			py.MustNewMethod("StreamValues", py_StreamValues, 0, "StreamValues(values, ...) -> ResultStream"),
		}

		globals := py.StringDict{
			"LIB_VERSION":        py.String(libgcd.LIB_VERSION),
			"MAX_LENGTH":         py.Int(gcdgraph.MaxLength),
			"EDGES_PAIRWISE":     py.Int(gcdgraph.EdgesPairwise),
			"EDGES_FACTOR_CHAIN": py.Int(gcdgraph.EdgesFactorChain),
			"READ_ONLY":          py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: ModuleName,
				Doc:  "largest connected component of gcd graphs",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
