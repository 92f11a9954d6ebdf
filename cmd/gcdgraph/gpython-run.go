package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	_ "github.com/2x3systems/gcdgraph/pygcd"
	_ "github.com/go-python/gpython/stdlib"
)

// runScripts runs each script in its own gpython context, stopping at the first failure.
// With no scripts, the startup script is run and a REPL is started in the same module.
func runScripts(pathnames []string, startup string) error {
	if len(pathnames) == 0 {
		return runREPL(startup)
	}
	for _, pathname := range pathnames {
		if err := runScript(pathname); err != nil {
			return err
		}
	}
	return nil
}

func runREPL(startup string) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer closeContext(ctx)

	replCtx := repl.New(ctx)
	if len(startup) > 0 {
		if _, err := py.RunFile(ctx, startup, py.CompileOpts{}, replCtx.Module); err != nil {
			py.TracebackDump(err)
			return errors.Wrapf(err, "startup script %q", startup)
		}
	}
	cli.RunREPL(replCtx)
	return nil
}

func runScript(pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer closeContext(ctx)

	start := time.Now()
	fmt.Printf("--- %s\n", pathname)

	if _, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil); err != nil {
		py.TracebackDump(err)
		return errors.Wrapf(err, "script %q", pathname)
	}

	elapsed := time.Since(start)
	fmt.Printf("--- %s done in %v\n", pathname, elapsed.Round(time.Millisecond))
	klog.V(1).Infof("%s completed in %v", pathname, elapsed)
	return nil
}

// closeContext blocks until the context's modules, and so any open catalogs, have shut down.
func closeContext(ctx py.Context) {
	ctx.Close()
	<-ctx.Done()
}
