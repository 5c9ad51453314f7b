// Command gatherinfo prints per-CDP properties of an SU file: fold,
// half-offset range, sampling, dominant frequency and a suggested semblance
// window half-width for cmp.
//
// Usage:
//
//	gatherinfo [flags] INPUT
//
// Examples:
//
//	gatherinfo line.su
//	gatherinfo -aph 2000 -cdp0 100 -cdp1 120 line.su
//	gatherinfo -byte-order big line.su
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-velan/gather"
	"github.com/cwbudde/algo-velan/qc"
	"github.com/cwbudde/algo-velan/su"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gatherinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	aph := fs.Float64("aph", math.Inf(1), "discard traces with half-offset beyond this")
	cdp0 := fs.Int("cdp0", math.MinInt32, "first CDP to list")
	cdp1 := fs.Int("cdp1", math.MaxInt32, "last CDP to list")
	order := fs.String("byte-order", "little", "SU byte order: little or big")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: gatherinfo [flags] INPUT\n\n")
		_, _ = fmt.Fprintf(stderr, "Prints fold, offsets, sampling and dominant frequency per CDP.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(stderr, "\nExamples:\n")
		_, _ = fmt.Fprintf(stderr, "  gatherinfo line.su\n")
		_, _ = fmt.Fprintf(stderr, "  gatherinfo -aph 2000 -cdp0 100 -cdp1 120 line.su\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if *cdp0 < math.MinInt32 || *cdp1 > math.MaxInt32 || *cdp0 > *cdp1 {
		_, _ = fmt.Fprintf(stderr, "error: invalid CDP range [%d, %d]\n", *cdp0, *cdp1)
		return 1
	}

	bo, err := su.ParseByteOrder(*order)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	set, stats, err := gather.IngestFile(fs.Arg(0), bo, *aph)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ids := set.InRange(int32(*cdp0), int32(*cdp1))
	if len(ids) == 0 {
		_, _ = fmt.Fprintf(stderr, "error: no CDPs in range (%d traces read, %d kept)\n", stats.Read, stats.Kept)
		return 1
	}
	if err := printInfo(stdout, set, ids); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printInfo(w io.Writer, set *gather.Set, ids []int32) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "CDP\tTraces\tMin h\tMax h\tMean h\tNS\tDT [ms]\tDom. freq [Hz]\tSuggested TAU [s]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "---\t------\t-----\t-----\t------\t--\t-------\t--------------\t-----------------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, id := range ids {
		g, _ := set.Group(id)
		info, err := qc.Describe(g)
		if err != nil {
			return fmt.Errorf("cdp %d: %w", id, err)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%.1f\t%.1f\t%.1f\t%d\t%.3f\t%.2f\t%.4f\n",
			info.CDP,
			info.Traces,
			info.MinHalfOffset,
			info.MaxHalfOffset,
			info.MeanHalfOffset,
			info.NS,
			info.DT*1e3,
			info.DominantFreq,
			info.SuggestedTau,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}
