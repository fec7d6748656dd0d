package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "schedule-report: %s\n", err.Error())
		os.Exit(1)
	}
}
