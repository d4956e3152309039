package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/links"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/register"
)

// RunLinks checks the liveness of every URL referenced by the register
// and fails when any are dead
func RunLinks(args []string) error {
	fs := flag.NewFlagSet("links", flag.ExitOnError)
	input := fs.String("input", "risk_matrix.csv", "Risk register CSV file")
	timeout := fs.Duration("timeout", 10*time.Second, "Per-request timeout")
	fs.Parse(args)

	table, rowErrs, err := register.Load(*input)
	if err != nil {
		return err
	}
	for _, rowErr := range rowErrs {
		fmt.Fprintf(os.Stderr, "skipped %s\n", rowErr.Error())
	}

	urls := links.ExtractURLs(table.Records)
	if len(urls) == 0 {
		fmt.Println("No URLs found in the register.")
		return nil
	}

	fmt.Printf("Checking %d URL(s)...\n", len(urls))
	checker := links.NewChecker(*timeout)
	statuses := checker.CheckAll(urls)

	for _, status := range statuses {
		switch {
		case status.OK:
			fmt.Printf("  ok    %3d  %s\n", status.StatusCode, status.URL)
		case status.Err != nil:
			fmt.Printf("  dead       %s (%v)\n", status.URL, status.Err)
		default:
			fmt.Printf("  dead  %3d  %s\n", status.StatusCode, status.URL)
		}
	}

	if dead := links.DeadCount(statuses); dead > 0 {
		return fmt.Errorf("%d dead link(s)", dead)
	}
	fmt.Println("All links alive.")
	return nil
}
