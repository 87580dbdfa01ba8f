package main

import (
	goflag "flag"
	"fmt"
	"os"
	"strconv"

	"github.com/henderiw/intervaltree/pkg/config"
	"github.com/henderiw/intervaltree/pkg/ingest"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "Path to a YAML config file. Flags given on the command line override its values.")
	input := pflag.StringP("input", "i", "", "Path to the record file: one <start>-<end> range per line, a blank line, then one integer query per line.")
	mode := pflag.String("mode", string(ingest.ModeBuild), "How to load the ranges: build (sort and bulk build) or insert (one by one).")
	printTree := pflag.Bool("print-tree", false, "Print the interval tree after loading, helps when troubleshooting.")
	verbosity := pflag.IntP("verbosity", "v", 0, "Log verbosity.")

	pflag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	pflag.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "mode":
			cfg.Mode = ingest.Mode(*mode)
		case "print-tree":
			cfg.PrintTree = *printTree
		case "verbosity":
			cfg.Verbosity = *verbosity
		}
	})
	if cfg.Input == "" && pflag.NArg() > 0 {
		cfg.Input = pflag.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		pflag.Usage()
		os.Exit(2)
	}

	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	if err := klogFlags.Set("v", strconv.Itoa(cfg.Verbosity)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer klog.Flush()

	log := klog.Background().WithName("ivcheck")

	in, err := ingest.ReadFile(cfg.Input)
	if err != nil {
		log.Error(err, "cannot read input")
		klog.Flush()
		os.Exit(1)
	}
	log.V(1).Info("read input", "file", cfg.Input, "intervals", len(in.Intervals), "queries", len(in.Queries))

	report, t, err := ingest.Run(in, cfg.Mode, log)
	if err != nil {
		log.Error(err, "run failed")
		klog.Flush()
		os.Exit(1)
	}

	if cfg.PrintTree {
		if err := t.Fprint(os.Stdout); err != nil {
			log.Error(err, "cannot print tree")
		}
	}

	fmt.Printf("Contained: %d\n", report.Contained)
	fmt.Printf("Covered: %d\n", report.Covered)
}
