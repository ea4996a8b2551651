// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"solir/internal/config"
	"solir/internal/errors"
	"solir/internal/semantic"
	"solir/internal/types"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: solir <type-expression>")
		fmt.Println("Example: solir 'bytes32[4]'")
		os.Exit(1)
	}

	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	startTime := time.Now()
	expr := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		color.Red("Analysis failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}
	commonlog.GetLogger("solir.cli").Debugf("inspecting %q against solc %s", expr, cfg.SolcVersion)

	typ, err := types.ParseType(expr, types.NewRegistry())
	if err != nil {
		reporter := errors.NewErrorReporter("<type-expression>", expr)
		if diag, ok := err.(errors.AnalysisError); ok {
			fmt.Print(reporter.FormatError(diag))
		} else {
			fmt.Fprintf(os.Stderr, "failed to parse type expression: %v\n", err)
		}
		color.Red("Analysis failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	printInspection(typ)
	color.Green("Successfully inspected %s in %s", typ, formatDuration(time.Since(startTime)))
}

// printInspection dumps the layout, shape and default value of a type.
// Function types have no storage layout or default; asking would panic,
// so they get a short note instead.
func printInspection(typ types.Type) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Printf("%s %s\n", bold("type:"), typ)

	if _, ok := typ.(*types.FunctionType); ok {
		fmt.Printf("%s none, function types are not storable\n", bold("layout:"))
		return
	}

	size, freshSlot := typ.StorageSize()
	fmt.Printf("%s %d bytes", bold("layout:"), size)
	if freshSlot {
		fmt.Print(", starts a fresh 32-byte slot")
	}
	fmt.Println()

	if typ.IsDynamic() {
		fmt.Printf("%s dynamic, size depends on runtime data\n", bold("shape:"))
	} else {
		fmt.Printf("%s static\n", bold("shape:"))
	}

	fmt.Printf("%s %s\n", bold("default:"), semantic.DefaultValue(typ))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
