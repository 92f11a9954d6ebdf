// Command gcdgraph runs gpython scripts against the _gcdgraph module, or starts a REPL when no script is given.
//
//	gcdgraph [-v N] [-startup file.py] [script.py ...]
package main

import (
	"flag"
	"os"

	"github.com/plan-systems/klog"
)

func main() {
	verbosity := flag.String("v", "1", "klog verbosity level")
	startup := flag.String("startup", "lib/_REPL_startup.py", "script run before the REPL starts; empty to skip")
	flag.Parse()

	logFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(logFlags)
	logFlags.Set("logtostderr", "true")
	logFlags.Set("v", *verbosity)
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	err := runScripts(flag.Args(), *startup)
	klog.Flush()
	if err != nil {
		klog.Errorf("gcdgraph: %v", err)
		os.Exit(1)
	}
}
