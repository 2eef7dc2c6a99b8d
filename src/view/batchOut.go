package view

import (
	"fmt"
	"io"
	"time"

	"darwin/src/universe"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora"
)

//PrintBatch writes one line per seeded world and the species standings
func PrintBatch(out io.Writer, results []universe.BatchResult, color bool) {
	au := aurora.NewAurora(color)
	var total time.Duration
	failed := 0
	fmt.Fprintln(out, au.Bold("Worlds:"))
	for _, r := range results {
		total += r.Duration
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "  seed %-6d %s\n", r.Seed, au.Red(r.Err.Error()))
			continue
		}
		fmt.Fprintf(out, "  seed %-6d %-8s turns %-8s %s\n",
			r.Seed, au.Green(r.Leader), humanize.Comma(int64(r.Turns)), r.Duration.Round(time.Millisecond))
	}

	fmt.Fprintln(out, au.Bold("Standings:"))
	for i, st := range universe.Standings(results) {
		fmt.Fprintf(out, "  %-5s %-8s wins %-4d creatures %s\n",
			humanize.Ordinal(i+1), au.Green(st.Species), st.Wins, humanize.Comma(int64(st.Total)))
	}
	fmt.Fprintf(out, "%s worlds, %s failed, %v of simulation\n",
		humanize.Comma(int64(len(results))), humanize.Comma(int64(failed)), total.Round(time.Millisecond))
}
