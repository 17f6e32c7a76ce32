// Command casc works on strategy files offline: it checks and formats .cas
// documents, generates CLang rules from them and evaluates positions.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var de *diagnosticsError
		if errors.As(err, &de) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}
