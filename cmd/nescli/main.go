// Command nescli is the nescore reference front-end: it loads a ROM image,
// drives the ControlDeck either headlessly or through an ebiten window, and
// can dump/load save states from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
