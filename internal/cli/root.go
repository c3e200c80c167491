/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package cli wires up the envprobe command-line tool: one cobra
// subcommand per processing stage (prefilter, irradiance, background,
// extract), mirroring the reference tool's separate operator binaries.
package cli

/*****************************************************************************************************************/

import (
	"os"

	"github.com/spf13/cobra"
)

/*****************************************************************************************************************/

var rootCommand = &cobra.Command{
	Use:   "envprobe",
	Short: "envprobe processes HDR environment cubemaps for physically based image-based lighting.",
	Long:  "envprobe processes HDR environment cubemaps for physically based image-based lighting: specular prefiltering, spherical-harmonic irradiance, background blur, and directional light extraction.",
}

/*****************************************************************************************************************/

func init() {
	rootCommand.AddCommand(PrefilterCommand)
	rootCommand.AddCommand(IrradianceCommand)
	rootCommand.AddCommand(BackgroundCommand)
	rootCommand.AddCommand(ExtractCommand)
}

/*****************************************************************************************************************/

// Execute runs the root command. A returned error (bad flags, a failed
// decode, a rejected invariant) has already been printed by cobra; this
// just turns it into a non-zero exit code so the pipeline never reports
// success on failure.
func Execute() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

/*****************************************************************************************************************/
