// Package main provides the svdcomm CLI.
package main

import (
	"flag"
	"fmt"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("svdcomm %s\n", version)
	case "bench":
		runBench(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("svdcomm - low-rank SVD gradient compression")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  bench      Measure compression ratio and error on synthetic gradients")
	fmt.Println("")
	fmt.Println("Run 'svdcomm bench -h' for bench flags.")
}

// newFlagSet returns a flag set that exits on parse errors.
func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}
