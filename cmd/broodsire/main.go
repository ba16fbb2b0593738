// Command broodsire ranks broodmare sires from a pedigree mind map.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "broodsire:", err)
		os.Exit(1)
	}
}
