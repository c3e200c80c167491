/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"fmt"

	"github.com/observerly/sidera/pkg/humanize"
	"github.com/spf13/cobra"

	"github.com/lumenforge/envprobe/internal/debugviz"
	"github.com/lumenforge/envprobe/pkg/cubeio"
	"github.com/lumenforge/envprobe/pkg/lightextract"
	"github.com/lumenforge/envprobe/pkg/lightstore"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

var (
	ExtractInputPath     string
	ExtractDBPath        string
	ExtractDebugPath     string
	ExtractMaxLights     int
	ExtractMaxLuminance  float64
	ExtractAreaSizeMax   float64
	ExtractLengthSizeMax float64
	ExtractDegreeMerge   float64
	ExtractMinRegionSize int
	ExtractMaxDepth      int
)

/*****************************************************************************************************************/

var ExtractCommand = &cobra.Command{
	Use:   "extract",
	Short: "extract promotes the brightest regions of an equirectangular panorama to directional lights",
	Long:  "extract recursively splits an equirectangular panorama into regions by summed-area luminance, promotes the brightest to directional lights, merges nearby lights, and persists the top N to a SQLite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunExtract(ExtractParams{
			InputPath:     ExtractInputPath,
			DBPath:        ExtractDBPath,
			DebugPath:     ExtractDebugPath,
			MaxLights:     ExtractMaxLights,
			MaxLuminance:  ExtractMaxLuminance,
			AreaSizeMax:   ExtractAreaSizeMax,
			LengthSizeMax: ExtractLengthSizeMax,
			DegreeMerge:   ExtractDegreeMerge,
			MinRegionSize: ExtractMinRegionSize,
			MaxDepth:      ExtractMaxDepth,
		})
	},
}

/*****************************************************************************************************************/

func init() {
	ExtractCommand.Flags().StringVarP(&ExtractInputPath, "input", "i", "", "Equirectangular panorama (PNG, BMP or TIFF)")
	ExtractCommand.MarkFlagRequired("input")

	ExtractCommand.Flags().StringVar(&ExtractDBPath, "db", "lights.db", "SQLite database to persist the extracted lights to")
	ExtractCommand.Flags().StringVar(&ExtractDebugPath, "debug", "", "Write a debug overlay PNG to this path (skipped if empty)")

	ExtractCommand.Flags().IntVar(&ExtractMaxLights, "max-lights", 8, "Maximum number of lights to keep after merging")
	ExtractCommand.Flags().Float64Var(&ExtractMaxLuminance, "max-luminance", 1e6, "Lights whose summed luminance exceeds this are flagged with Error")
	ExtractCommand.Flags().Float64Var(&ExtractAreaSizeMax, "area-size-max", 0.3, "Maximum normalised area for the coarse merge pass")
	ExtractCommand.Flags().Float64Var(&ExtractLengthSizeMax, "length-size-max", 0.5, "Maximum normalised side length for the coarse merge pass")
	ExtractCommand.Flags().Float64Var(&ExtractDegreeMerge, "degree-merge", 5.0, "Angular merge border in degrees")
	ExtractCommand.Flags().IntVar(&ExtractMinRegionSize, "min-region-size", 4, "Region area (pixels) at or below which splitting stops")
	ExtractCommand.Flags().IntVar(&ExtractMaxDepth, "max-depth", 12, "Maximum recursive split depth")
}

/*****************************************************************************************************************/

// ExtractParams configures a single extract command invocation.
type ExtractParams struct {
	InputPath     string
	DBPath        string
	DebugPath     string
	MaxLights     int
	MaxLuminance  float64
	AreaSizeMax   float64
	LengthSizeMax float64
	DegreeMerge   float64
	MinRegionSize int
	MaxDepth      int
}

/*****************************************************************************************************************/

// RunExtract loads the source panorama, runs the light-extraction
// pipeline, persists the result under a fresh run ID, and optionally
// renders a debug overlay.
func RunExtract(params ExtractParams) error {
	pixels, width, height, err := cubeio.LoadEquirect(params.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load panorama: %w", err)
	}

	splitParams := lightextract.SplitParams{
		MinRegionSize: params.MinRegionSize,
		MaxDepth:      params.MaxDepth,
	}

	lights, err := lightextract.Extract(pixels, width, height, 3, lightextract.Params{
		MaxLights:     params.MaxLights,
		MaxLuminance:  params.MaxLuminance,
		AreaSizeMax:   params.AreaSizeMax,
		LengthSizeMax: params.LengthSizeMax,
		DegreeMerge:   params.DegreeMerge,
		SplitParams:   splitParams,
	})
	if err != nil {
		return fmt.Errorf("failed to extract lights: %w", err)
	}

	fmt.Printf(
		"Extracted %d lights (merge border %s)\n",
		len(lights),
		humanize.FormatDecimalToDMS(params.DegreeMerge, "%s%d°%d'%.2f\""),
	)

	store, err := lightstore.Open(params.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open light store: %w", err)
	}
	defer store.Close()

	runID, err := lightstore.NewRunID()
	if err != nil {
		return fmt.Errorf("failed to mint run id: %w", err)
	}

	if err := store.SaveRun(runID, lights); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Printf("Run %s saved to %s\n", runID, params.DBPath)

	if params.DebugPath == "" {
		return nil
	}

	sat := lightextract.BuildSAT(pixels, width, height, 3)
	regions := lightextract.SplitRegions(sat, luminanceBuffer(pixels, width, height, 3), splitParams)

	if err := debugviz.Render(pixels, width, height, 3, regions, lights, params.DebugPath); err != nil {
		return fmt.Errorf("failed to write debug overlay: %w", err)
	}

	return nil
}

/*****************************************************************************************************************/

// luminanceBuffer collapses an interleaved RGB(A) buffer to a per-pixel
// luminance buffer, the shape lightextract.SplitRegions expects for its
// noise-floor analysis.
func luminanceBuffer(pixels []float32, width, height, stride int) []float32 {
	lum := make([]float32, width*height)

	for i := 0; i < width*height; i++ {
		idx := i * stride
		r := float64(pixels[idx+0])
		g := float64(pixels[idx+1])
		b := float64(pixels[idx+2])
		lum[i] = float32(vec.Luminance(r, g, b))
	}

	return lum
}

/*****************************************************************************************************************/
