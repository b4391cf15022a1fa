package main

import (
	"fmt"
	"os"

	"github.com/polkiloo/invoicebox/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "invoicectl:", err)
		os.Exit(1)
	}
}
