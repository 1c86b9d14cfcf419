// bmpheaders decodes and inspects the headers of BMP files.
package main

import (
	"fmt"
	"os"

	"bmpheaders/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
