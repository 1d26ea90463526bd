// Command stylematrix applies color-matrix styles to images.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/stylematrix/cmd/stylematrix/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
