package main

import (
	"github.com/aretw0/ddc"
	"github.com/spf13/cobra"
)

// setVersion wires cobra's --version flag (-v) to the embedded version.
func setVersion(cmd *cobra.Command) {
	cmd.Version = ddc.Version
	cmd.SetVersionTemplate("This is {{.Name}} version {{.Version}}\n")
}
