package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/agbru/fibfixed/internal/fibonacci"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
}

func main() {
	outputDir := flag.String("out", "internal/fibonacci/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "fibonacci_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Every index up to the last uint64-representable term, then a couple
	// past it so the wraparound of both widths can be checked.
	var targets []uint64
	for n := uint64(0); n <= fibonacci.MaxSafeIndex64; n++ {
		targets = append(targets, n)
	}
	targets = append(targets, fibonacci.MaxSafeIndex64+1, 100)

	data := make([]GoldenData, 0, len(targets))
	for _, n := range targets {
		data = append(data, GoldenData{N: n, Result: fibBig(n).String()})
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d entries in %s\n", len(data), filename)
}

// fibBig calculates the nth Fibonacci number using math/big.
// It is the arbitrary-precision oracle the fixed-width results are checked against.
func fibBig(n uint64) *big.Int {
	if n < 2 {
		return new(big.Int).SetUint64(n)
	}

	a := big.NewInt(0)
	b := big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b
}
