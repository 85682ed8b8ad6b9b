package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	analyzeInput     string
	analyzeThreshold float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a single face image",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeInput == "" {
			return errors.New("--input is required")
		}
		engine, err := newEngine()
		if err != nil {
			return err
		}
		buf, err := loadImage(analyzeInput)
		if err != nil {
			return err
		}
		threshold := engine.Config().Scoring.DefaultThreshold
		if cmd.Flags().Changed("threshold") {
			threshold = analyzeThreshold
		}
		result, err := engine.AnalyzeImage(cmd.Context(), buf, threshold)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFormat, result)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to the image")
	analyzeCmd.Flags().Float64VarP(&analyzeThreshold, "threshold", "t", 50, "Decision threshold on the 0-100 score")
}
