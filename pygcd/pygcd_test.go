package pygcd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"

	_ "github.com/2x3systems/gcdgraph/pygcd"
	_ "github.com/go-python/gpython/stdlib"
)

// runScript executes src as a gpython script and returns the globals it leaves behind.
// gpython resolves a script against its sys paths, so the script is run by relative name from its own dir.
func runScript(t *testing.T, src string) py.StringDict {
	dir := t.TempDir()
	const scriptName = "script.py"
	require.NoError(t, os.WriteFile(filepath.Join(dir, scriptName), []byte(src), 0600))

	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(prevDir)

	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	module, err := py.RunFile(ctx, scriptName, py.CompileOpts{}, nil)
	if err != nil {
		py.TracebackDump(err)
	}
	require.NoError(t, err)
	return module.Globals
}

func requireInt(t *testing.T, globals py.StringDict, name string, want int) {
	t.Helper()
	obj, ok := globals[name]
	require.True(t, ok, "global %q missing", name)
	got, err := py.GetInt(obj)
	require.NoError(t, err)
	require.EqualValues(t, want, got, name)
}

func TestEntryPoints(t *testing.T) {
	globals := runScript(t, `
import _gcdgraph as g

empty = g.largest_component_size([])
single = g.largest_component_size([7])
coprime = g.largest_component_size([2, 3, 5, 7])
evens = g.largest_component_size((2, 4, 6, 8), 4)
mixed = g.largest_component_size([2, 3, 4], 3)
prefix = g.largest_component_size([3, 5, 15, 20], 2)
expr = g.largest_component_size("1..6")
all6 = g.largest_component_size_all_integers(6)
chain6 = g.largest_component_size_all_integers(6, g.EDGES_FACTOR_CHAIN)
again = g.largest_component_size_all_integers(6)
num_sizes = len(g.component_sizes("1..10"))
d = g.gcd(-12, 18)
d_min = str(g.gcd(-(2 ** 63), 0))
`)
	requireInt(t, globals, "empty", 0)
	requireInt(t, globals, "single", 1)
	requireInt(t, globals, "coprime", 1)
	requireInt(t, globals, "evens", 4)
	requireInt(t, globals, "mixed", 2)
	requireInt(t, globals, "prefix", 1)
	requireInt(t, globals, "expr", 4)
	requireInt(t, globals, "all6", 4)
	requireInt(t, globals, "chain6", 4)
	requireInt(t, globals, "again", 4)
	requireInt(t, globals, "num_sizes", 3)
	requireInt(t, globals, "d", 6)
	require.Equal(t, py.String("9223372036854775808"), globals["d_min"])
}

func TestInvalidLengthRaises(t *testing.T) {
	globals := runScript(t, `
import _gcdgraph as g

raised = 0
try:
    g.largest_component_size_all_integers(-1)
except ValueError:
    raised += 1
try:
    g.largest_component_size([2, 4], 3)
except ValueError:
    raised += 1
try:
    g.largest_component_size_all_integers(g.MAX_LENGTH + 1)
except ValueError:
    raised += 1
try:
    g.parse_values("4..1")
except ValueError:
    raised += 1
`)
	requireInt(t, globals, "raised", 4)
}

func TestStreams(t *testing.T) {
	dir := t.TempDir()
	globals := runScript(t, `
import _gcdgraph as g

ws = g.GetWorkspace()
cat = ws.OpenCatalog("")
solved = g.EnumRanges(1, 8).Solve(0, cat).AddTo(cat).Go()
entries = cat.NumEntries()
results = g.EnumRanges(6, 6).Solve(0, cat).Results()
size6 = results[0][1]
uniq = g.StreamValues("2, 3, 4", [2, 3, 4], "2..8").DropDupes().Solve().Print("t", file="`+filepath.Join(dir, "out.csv")+`").Go()
selected = cat.Select().Go()
cat.Close()
after_close = g.EnumRanges(5, 6).Solve(0, cat).AddTo(cat).Results()
`)
	requireInt(t, globals, "solved", 8)
	requireInt(t, globals, "entries", 8)
	requireInt(t, globals, "size6", 4)
	requireInt(t, globals, "uniq", 2)
	requireInt(t, globals, "selected", 8)

	afterClose, ok := globals["after_close"].(py.Tuple)
	require.True(t, ok)
	require.Len(t, afterClose, 2)
	requireInt(t, py.StringDict{"size": afterClose[1].(py.Tuple)[1]}, "size", 4)

	out, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	require.Equal(t, "t,000001,2, 3, 4,2\nt,000002,2..8,5\n", string(out))
}
