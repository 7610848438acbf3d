package main

import (
	"fmt"
	"os"
)

func main() {
	loadEnvFiles()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
