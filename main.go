// Package main provides the entry point for scsim.
// scsim is a single-cycle simulator for a small 32-bit load/store ISA.
//
// For the full CLI, use: go run ./cmd/scsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("scsim - Single-Cycle Processor Simulator")
	fmt.Println("")
	fmt.Println("Usage: scsim [options] <program.hex>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to simulator configuration JSON file")
	fmt.Println("  -cycles    Run exactly this many cycles")
	fmt.Println("  -strict    Fail on unsupported instructions")
	fmt.Println("  -expect    Check the final state against an expectation file")
	fmt.Println("  -v         Trace every cycle")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/scsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/scsim' instead.")
	}
}
