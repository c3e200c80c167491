/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumenforge/envprobe/pkg/cubemap"
	"github.com/lumenforge/envprobe/pkg/cubeio"
	"github.com/lumenforge/envprobe/pkg/miplevel"
	"github.com/lumenforge/envprobe/pkg/sphharm"
)

/*****************************************************************************************************************/

var (
	IrradianceInputDir        string
	IrradianceInputPrefix     string
	IrradianceReportPath      string
	IrradianceReconstructDir  string
	IrradianceReconstructStem string
	IrradianceReconstructSize int
	IrradianceFixup           bool
	IrradianceSolidAngle      bool
)

/*****************************************************************************************************************/

var IrradianceCommand = &cobra.Command{
	Use:   "irradiance",
	Short: "irradiance projects an order-5 spherical-harmonic basis from a source cubemap",
	Long:  "irradiance projects an order-5 (25-coefficient) spherical-harmonic basis from a source cubemap for diffuse image-based lighting, reporting the coefficients and optionally reconstructing a preview cubemap",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunIrradiance(IrradianceParams{
			InputDir:        IrradianceInputDir,
			InputPrefix:     IrradianceInputPrefix,
			ReportPath:      IrradianceReportPath,
			ReconstructDir:  IrradianceReconstructDir,
			ReconstructStem: IrradianceReconstructStem,
			ReconstructSize: IrradianceReconstructSize,
			Fixup:           IrradianceFixup,
			SolidAngle:      IrradianceSolidAngle,
		})
	},
}

/*****************************************************************************************************************/

func init() {
	IrradianceCommand.Flags().StringVarP(&IrradianceInputDir, "input", "i", "", "Directory containing the six source cubemap face PNGs")
	IrradianceCommand.MarkFlagRequired("input")

	IrradianceCommand.Flags().StringVar(&IrradianceInputPrefix, "input-prefix", "source", "Filename prefix of the source face PNGs")

	IrradianceCommand.Flags().StringVar(&IrradianceReportPath, "report", "", "Path to write the coefficient report (stdout if empty)")

	IrradianceCommand.Flags().StringVar(&IrradianceReconstructDir, "reconstruct", "", "Directory to write a reconstructed preview cubemap (skipped if empty)")
	IrradianceCommand.Flags().StringVar(&IrradianceReconstructStem, "reconstruct-prefix", "irradiance", "Filename prefix for the reconstructed face PNGs")
	IrradianceCommand.Flags().IntVar(&IrradianceReconstructSize, "reconstruct-size", 32, "Face size of the reconstructed preview cubemap")

	IrradianceCommand.Flags().BoolVar(&IrradianceFixup, "fixup", true, "Apply edge-fixup texel remapping")
	IrradianceCommand.Flags().BoolVar(&IrradianceSolidAngle, "solid-angle-weighting", true, "Weight the projection by per-texel solid angle")
}

/*****************************************************************************************************************/

// IrradianceParams configures a single irradiance command invocation.
type IrradianceParams struct {
	InputDir        string
	InputPrefix     string
	ReportPath      string
	ReconstructDir  string
	ReconstructStem string
	ReconstructSize int
	Fixup           bool
	SolidAngle      bool
}

/*****************************************************************************************************************/

// RunIrradiance decodes the source cubemap, projects it into the
// spherical-harmonic basis, writes the coefficient report, and
// optionally reconstructs a preview cubemap for visual inspection.
func RunIrradiance(params IrradianceParams) error {
	source := cubeio.DirectorySource{Dir: params.InputDir, Prefix: params.InputPrefix}

	level, err := source.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode source cubemap: %w", err)
	}

	env, err := cubemap.FromLevels([]*miplevel.MipLevel{level})
	if err != nil {
		return fmt.Errorf("failed to build source cubemap: %w", err)
	}

	coeffs, err := sphharm.Project(env, params.SolidAngle, params.Fixup)
	if err != nil {
		return fmt.Errorf("failed to project spherical harmonics: %w", err)
	}

	report := sphharm.FormatReport(coeffs)

	if params.ReportPath == "" {
		fmt.Print(report)
	} else if err := os.WriteFile(params.ReportPath, []byte(report), 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", params.ReportPath, err)
	}

	if params.ReconstructDir == "" {
		return nil
	}

	recon, err := sphharm.ReconstructCubemap(coeffs, params.ReconstructSize, params.Fixup)
	if err != nil {
		return fmt.Errorf("failed to reconstruct preview cubemap: %w", err)
	}

	sink := cubeio.DirectorySink{Dir: params.ReconstructDir, Prefix: params.ReconstructStem}
	if err := sink.Encode(recon.Levels[0]); err != nil {
		return fmt.Errorf("failed to write reconstructed preview: %w", err)
	}

	return nil
}

/*****************************************************************************************************************/
