package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drummonds/pdfstitch/engine"
)

var textCmd = &cobra.Command{
	Use:   "text [source]",
	Short: "Print the embedded text layer of a PDF",
	Long: `Text extracts the embedded text layer of a PDF and prints it to stdout.
Scanned documents without a text layer produce empty output. The source is
a local file path or an http(s) URL.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runText,
}

func init() {
	textCmd.Flags().Duration("timeout", 0, "HTTP download timeout (default none)")

	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	source, err := resolveSourceArg(args)
	if err != nil {
		return err
	}

	// Text extraction never touches the rendering backend
	eng := engine.NewEngine(nil, serverConfig)
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		eng.HTTPClient.Timeout = timeout
	}

	text, err := eng.ExtractText(source)
	if err != nil {
		return err
	}

	fmt.Print(text)
	return nil
}
