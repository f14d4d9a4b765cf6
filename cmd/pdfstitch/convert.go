package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/drummonds/pdfstitch/engine"
	"github.com/drummonds/pdfstitch/engine/pdfrenderer"
)

var convertCmd = &cobra.Command{
	Use:   "convert [source]",
	Short: "Render a PDF and stack its pages into one image",
	Long: `Convert renders every page of a PDF and writes a single image with the
pages stacked vertically. The source is either a local file path or an
http(s) URL; with no argument the source is read from an interactive
prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output image path (default output_image.jpg)")
	convertCmd.Flags().Float64("scale", 0, "render scale factor (default 2.0)")
	convertCmd.Flags().String("renderer", "", "rendering backend: fitz or pdfium (default fitz)")
	convertCmd.Flags().Duration("timeout", 0, "HTTP download timeout (default none)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	source, err := resolveSourceArg(args)
	if err != nil {
		return err
	}

	renderer, err := pdfrenderer.NewRenderer(resolveRenderer(cmd))
	if err != nil {
		return err
	}
	defer renderer.Close()

	eng := engine.NewEngine(renderer, serverConfig)
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		eng.HTTPClient.Timeout = timeout
	}

	result, err := eng.Run(source, resolveOutput(cmd), resolveScale(cmd))
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d page(s) to %s (%dx%d)\n", result.PageCount, result.OutputPath, result.Width, result.Height)
	return nil
}

// resolveSourceArg returns the positional source, prompting interactively
// when none was given.
func resolveSourceArg(args []string) (string, error) {
	var line string
	if len(args) == 1 {
		line = args[0]
	} else {
		fmt.Print("Enter the file path or URL of the PDF: ")
		reader := bufio.NewReader(os.Stdin)
		read, err := reader.ReadString('\n')
		if err != nil && read == "" {
			return "", fmt.Errorf("unable to read source: %w", err)
		}
		line = read
	}

	source := strings.TrimSpace(line)
	if source == "" {
		return "", fmt.Errorf("source must not be empty")
	}
	return source, nil
}

// resolveOutput picks the output path: --output flag, then config file /
// PDFSTITCH_OUTPUT, then the OUTPUT_PATH environment default.
func resolveOutput(cmd *cobra.Command) string {
	if cmd.Flags().Changed("output") {
		output, _ := cmd.Flags().GetString("output")
		return output
	}
	if output := viper.GetString("output"); output != "" {
		return output
	}
	return serverConfig.OutputPath
}

// resolveScale picks the render scale with the same precedence as
// resolveOutput.
func resolveScale(cmd *cobra.Command) float64 {
	if cmd.Flags().Changed("scale") {
		scale, _ := cmd.Flags().GetFloat64("scale")
		return scale
	}
	if scale := viper.GetFloat64("scale"); scale > 0 {
		return scale
	}
	return serverConfig.RenderScale
}
