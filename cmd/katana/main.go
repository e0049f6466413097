package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/OopsOverflow/turbo-katana/internal/config"
	"github.com/OopsOverflow/turbo-katana/pkg/cli"
)

func main() {
	var a cli.Args
	var showVersion bool

	flag.StringVar(&a.Output, "o", "", "output file (default stdout)")
	flag.StringVar(&a.OptionsFile, "options", "", "YAML options file")
	flag.StringVar(&a.LogLevel, "log-level", "", "log level (panic..trace)")
	flag.BoolVar(&a.NoComments, "no-comments", false, "strip comment lines from the output")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: katana [flags] <program.json>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Println("katana " + config.Version)
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(cli.ExitUsage)
	}
	a.Input = flag.Arg(0)

	os.Exit(cli.Entry(a, os.Stderr))
}
