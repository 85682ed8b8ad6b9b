package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"facegate.io/infrastructure/biometric"
)

var (
	burstDir             string
	burstStaticThreshold float64
)

var burstCmd = &cobra.Command{
	Use:   "burst",
	Short: "Check whether a directory of frames is a static replay",
	RunE: func(cmd *cobra.Command, args []string) error {
		if burstDir == "" {
			return errors.New("--dir is required")
		}
		engine, err := newEngine()
		if err != nil {
			return err
		}
		frames, err := loadFrames(burstDir, engine.Config().Temporal.MaxFrames)
		if err != nil {
			return err
		}
		staticThreshold := engine.Config().Temporal.StaticThreshold
		if cmd.Flags().Changed("static-threshold") {
			staticThreshold = burstStaticThreshold
		}
		return render(cmd.OutOrStdout(), outputFormat, engine.AnalyzeFrames(frames, staticThreshold))
	},
}

func init() {
	rootCmd.AddCommand(burstCmd)
	burstCmd.Flags().StringVarP(&burstDir, "dir", "d", "", "Directory of frames, processed in file name order")
	burstCmd.Flags().Float64VarP(&burstStaticThreshold, "static-threshold", "s", biometric.DefaultTemporalConfig().StaticThreshold, "Average correlation above which the burst is static (defaults to the configured value)")
}
