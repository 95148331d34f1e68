package main

import (
	"fmt"

	"github.com/seqlab/mmseqs-mcp/internal/artifacts"
)

// runStatus prints the artifact chain for one or all jobs in a working
// directory.
func runStatus(dir, name string) error {
	if name != "" {
		printChain(artifacts.ScanChain(dir, name))
		return nil
	}

	names := artifacts.ListJobs(dir)
	if len(names) == 0 {
		fmt.Println("No pipeline jobs found.")
		return nil
	}

	for i, n := range names {
		if i > 0 {
			fmt.Println()
		}
		printChain(artifacts.ScanChain(dir, n))
	}
	return nil
}

func printChain(chain artifacts.ChainStatus) {
	fmt.Printf("Job: %s\n", chain.Name)
	for _, a := range chain.Artifacts {
		marker := "  "
		label := "missing"
		if a.Present {
			label = "present"
		}
		if a.Step == chain.NextStep {
			marker = "->"
			label = "next"
		}
		fmt.Printf("  %s Step %d: %-24s [%s]\n", marker, a.Step, a.Label, label)
	}
	if chain.NextStep == -1 {
		fmt.Println("  All artifacts present.")
	}
}
