// main is the entry point for the climatlas CLI.
package main

import (
	"fmt"
	"os"

	"climatlas/cmd"
	"climatlas/internal/snapstore"
)

func main() {
	cmd.SetStoreManager(snapstore.Manager)

	err := cmd.Execute()
	snapstore.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
