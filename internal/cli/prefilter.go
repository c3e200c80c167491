/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenforge/envprobe/pkg/cubemap"
	"github.com/lumenforge/envprobe/pkg/cubeio"
	"github.com/lumenforge/envprobe/pkg/miplevel"
	"github.com/lumenforge/envprobe/pkg/prefilter"
)

/*****************************************************************************************************************/

var (
	PrefilterInputDir    string
	PrefilterInputPrefix string
	PrefilterOutputDir   string
	PrefilterOutputStem  string
	PrefilterEndSize     int
	PrefilterNumSamples  int
	PrefilterNumRotate   int
	PrefilterFixup       bool
)

/*****************************************************************************************************************/

var PrefilterCommand = &cobra.Command{
	Use:   "prefilter",
	Short: "prefilter generates a GGX specular mip pyramid from a source cubemap",
	Long:  "prefilter generates a GGX specular mip pyramid from a source cubemap, writing one six-face PNG directory per mip level",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPrefilter(PrefilterParams{
			InputDir:    PrefilterInputDir,
			InputPrefix: PrefilterInputPrefix,
			OutputDir:   PrefilterOutputDir,
			OutputStem:  PrefilterOutputStem,
			EndSize:     PrefilterEndSize,
			NumSamples:  PrefilterNumSamples,
			NumRotate:   PrefilterNumRotate,
			Fixup:       PrefilterFixup,
		})
	},
}

/*****************************************************************************************************************/

func init() {
	PrefilterCommand.Flags().StringVarP(&PrefilterInputDir, "input", "i", "", "Directory containing the six source cubemap face PNGs")
	PrefilterCommand.MarkFlagRequired("input")

	PrefilterCommand.Flags().StringVar(&PrefilterInputPrefix, "input-prefix", "source", "Filename prefix of the source face PNGs")

	PrefilterCommand.Flags().StringVarP(&PrefilterOutputDir, "output", "o", "", "Directory under which each mip level's faces are written")
	PrefilterCommand.MarkFlagRequired("output")

	PrefilterCommand.Flags().StringVar(&PrefilterOutputStem, "output-prefix", "specular", "Filename prefix for the output face PNGs")

	PrefilterCommand.Flags().IntVar(&PrefilterEndSize, "end-size", 4, "Smallest mip level face size")
	PrefilterCommand.Flags().IntVar(&PrefilterNumSamples, "samples", 1024, "GGX importance samples per texel")
	PrefilterCommand.Flags().IntVar(&PrefilterNumRotate, "rotations", 8, "Per-pixel rotation offsets averaged per texel")
	PrefilterCommand.Flags().BoolVar(&PrefilterFixup, "fixup", true, "Apply edge-fixup texel remapping")
}

/*****************************************************************************************************************/

// PrefilterParams configures a single prefilter command invocation.
type PrefilterParams struct {
	InputDir    string
	InputPrefix string
	OutputDir   string
	OutputStem  string
	EndSize     int
	NumSamples  int
	NumRotate   int
	Fixup       bool
}

/*****************************************************************************************************************/

// RunPrefilter decodes the source cubemap, runs the GGX prefilter
// pyramid, and writes each level back out as a directory of face PNGs
// named "<OutputDir>/level<N>".
func RunPrefilter(params PrefilterParams) error {
	source := cubeio.DirectorySource{Dir: params.InputDir, Prefix: params.InputPrefix}

	level, err := source.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode source cubemap: %w", err)
	}

	env, err := cubemap.FromLevels([]*miplevel.MipLevel{level})
	if err != nil {
		return fmt.Errorf("failed to build source cubemap: %w", err)
	}

	outputs, err := prefilter.PrefilterPyramid(env, prefilter.Params{
		StartSize:    level.Size,
		EndSize:      params.EndSize,
		NumSamples:   params.NumSamples,
		NumRotations: params.NumRotate,
		Fixup:        params.Fixup,
	})
	if err != nil {
		return fmt.Errorf("failed to prefilter pyramid: %w", err)
	}

	for i, out := range outputs {
		sink := cubeio.DirectorySink{
			Dir:    fmt.Sprintf("%s/level%d", params.OutputDir, i),
			Prefix: params.OutputStem,
		}
		if err := sink.Encode(out); err != nil {
			return fmt.Errorf("failed to write level %d: %w", i, err)
		}

		fmt.Printf("Level %d (%dx%d) written to %s\n", i, out.Size, out.Size, sink.Dir)
	}

	return nil
}

/*****************************************************************************************************************/
