// Command ledgerctl prints customer balances and exports statements straight
// from the database, for shop owners who do not run the API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
