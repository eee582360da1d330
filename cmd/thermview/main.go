// Command thermview decodes thermal-camera screenshots into recovered
// temperature grids and re-rendered images. See internal/cmd for the
// cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/Fepozopo/thermview/internal/cmd"
)

func main() {
	if err := cmd.NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
