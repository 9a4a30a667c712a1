package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/report"
)

var (
	validateInput  string
	validateReport string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate one document package from a JSON file",
	Long:  "Reads a package description (document types and raw text) from a JSON file, runs the full validation pipeline, and prints the verdict as JSON. Optionally writes an XLSX report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx, "validate")
		if err != nil {
			return err
		}
		defer env.Close()

		data, err := os.ReadFile(validateInput)
		if err != nil {
			return eris.Wrapf(err, "validate: read %s", validateInput)
		}
		var input model.PackageInput
		if err := json.Unmarshal(data, &input); err != nil {
			return eris.Wrap(err, "validate: parse input")
		}
		if input.Channel == "" {
			input.Channel = model.ChannelAPI
		}

		verdict, err := env.Pipeline.Run(ctx, input)
		if err != nil {
			return err
		}

		if validateReport != "" {
			if err := report.WriteXLSX(verdict, validateReport); err != nil {
				return err
			}
			zap.L().Info("report written", zap.String("path", validateReport))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(verdict), "validate: encode verdict")
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateInput, "input", "", "path to package JSON (required)")
	validateCmd.Flags().StringVar(&validateReport, "report", "", "write an XLSX report to this path")
	_ = validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}
