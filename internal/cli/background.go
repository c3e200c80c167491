/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"fmt"
	"math"

	"github.com/observerly/sidera/pkg/humanize"
	"github.com/spf13/cobra"

	"github.com/lumenforge/envprobe/pkg/background"
	"github.com/lumenforge/envprobe/pkg/cubemap"
	"github.com/lumenforge/envprobe/pkg/cubeio"
	"github.com/lumenforge/envprobe/pkg/miplevel"
)

/*****************************************************************************************************************/

var (
	BackgroundInputDir    string
	BackgroundInputPrefix string
	BackgroundOutputDir   string
	BackgroundOutputStem  string
	BackgroundSize        int
	BackgroundNumSamples  int
	BackgroundNumRotate   int
	BackgroundRadius      float64
	BackgroundFixup       bool
)

/*****************************************************************************************************************/

var BackgroundCommand = &cobra.Command{
	Use:   "background",
	Short: "background renders a softly blurred backplate cubemap for direct camera view",
	Long:  "background renders a softly blurred backplate cubemap from a source environment, using a cone-sampled Gaussian falloff rather than the GGX lobe used for specular reflections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunBackground(BackgroundParams{
			InputDir:    BackgroundInputDir,
			InputPrefix: BackgroundInputPrefix,
			OutputDir:   BackgroundOutputDir,
			OutputStem:  BackgroundOutputStem,
			Size:        BackgroundSize,
			NumSamples:  BackgroundNumSamples,
			NumRotate:   BackgroundNumRotate,
			Radius:      BackgroundRadius,
			Fixup:       BackgroundFixup,
		})
	},
}

/*****************************************************************************************************************/

func init() {
	BackgroundCommand.Flags().StringVarP(&BackgroundInputDir, "input", "i", "", "Directory containing the six source cubemap face PNGs")
	BackgroundCommand.MarkFlagRequired("input")

	BackgroundCommand.Flags().StringVar(&BackgroundInputPrefix, "input-prefix", "source", "Filename prefix of the source face PNGs")

	BackgroundCommand.Flags().StringVarP(&BackgroundOutputDir, "output", "o", "", "Directory to write the blurred backplate face PNGs")
	BackgroundCommand.MarkFlagRequired("output")

	BackgroundCommand.Flags().StringVar(&BackgroundOutputStem, "output-prefix", "background", "Filename prefix for the output face PNGs")

	BackgroundCommand.Flags().IntVar(&BackgroundSize, "size", 256, "Face size of the rendered backplate")
	BackgroundCommand.Flags().IntVar(&BackgroundNumSamples, "samples", 64, "Cone samples per texel")
	BackgroundCommand.Flags().IntVar(&BackgroundNumRotate, "rotations", 1, "Per-pixel rotation offsets averaged per texel")
	BackgroundCommand.Flags().Float64Var(&BackgroundRadius, "radius", 0.1, "Cone half-angle as a fraction of 90° (clamped to [0,1])")
	BackgroundCommand.Flags().BoolVar(&BackgroundFixup, "fixup", true, "Apply edge-fixup texel remapping")
}

/*****************************************************************************************************************/

// BackgroundParams configures a single background command invocation.
type BackgroundParams struct {
	InputDir    string
	InputPrefix string
	OutputDir   string
	OutputStem  string
	Size        int
	NumSamples  int
	NumRotate   int
	Radius      float64
	Fixup       bool
}

/*****************************************************************************************************************/

// RunBackground decodes the source cubemap, renders the blurred
// backplate, and writes it out as a directory of face PNGs.
func RunBackground(params BackgroundParams) error {
	source := cubeio.DirectorySource{Dir: params.InputDir, Prefix: params.InputPrefix}

	level, err := source.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode source cubemap: %w", err)
	}

	env, err := cubemap.FromLevels([]*miplevel.MipLevel{level})
	if err != nil {
		return fmt.Errorf("failed to build source cubemap: %w", err)
	}

	out, err := background.Render(env, background.Params{
		Size:         params.Size,
		NumSamples:   params.NumSamples,
		NumRotations: params.NumRotate,
		Radius:       params.Radius,
		Fixup:        params.Fixup,
	})
	if err != nil {
		return fmt.Errorf("failed to render background: %w", err)
	}

	sink := cubeio.DirectorySink{Dir: params.OutputDir, Prefix: params.OutputStem}
	if err := sink.Encode(out); err != nil {
		return fmt.Errorf("failed to write background: %w", err)
	}

	radiusDegrees := math.Min(math.Max(params.Radius, 0), 1) * 90

	fmt.Printf(
		"Background (%dx%d, cone radius %s) written to %s\n",
		out.Size, out.Size,
		humanize.FormatDecimalToDMS(radiusDegrees, "%s%d°%d'%.2f\""),
		params.OutputDir,
	)

	return nil
}

/*****************************************************************************************************************/
