// fragid identifies small-molecule fragmentation trees from MS2 experiments.
package main

import (
	"fmt"
	"os"

	"github.com/msfrag/fragid/cmd/fragid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
