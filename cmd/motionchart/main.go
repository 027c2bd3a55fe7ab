// main is the entry point for the motionchart CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/motionchart/cmd"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "❌", stopErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
