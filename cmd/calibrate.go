package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/biometric/types"
)

var calibrateDir string

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Recommend a static threshold from labelled frame bursts",
	Long: `Reads DIR/real/<sample>/* and DIR/spoof/<sample>/*, one burst per sample
directory, and prints the per-sample correlations, the class means and the
recommended static threshold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if calibrateDir == "" {
			return errors.New("--dir is required")
		}
		engine, err := newEngine()
		if err != nil {
			return err
		}
		sampleDirs, err := discoverSamples(calibrateDir)
		if err != nil {
			return err
		}
		if len(sampleDirs) == 0 {
			return fmt.Errorf("no samples found under %s/real or %s/spoof", calibrateDir, calibrateDir)
		}

		bar := progressbar.NewOptions(len(sampleDirs),
			progressbar.OptionSetDescription("loading samples"),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionShowCount(),
		)
		samples := make([]biometric.CalibrationSample, 0, len(sampleDirs))
		for _, sd := range sampleDirs {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			frames, err := loadFrames(sd.path, engine.Config().Temporal.MaxFrames)
			if err != nil {
				return err
			}
			samples = append(samples, biometric.CalibrationSample{Label: sd.label, Frames: frames})
			bar.Add(1)
		}
		bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())

		result, err := engine.Calibrate(cmd.Context(), samples)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFormat, result)
	},
}

type sampleDir struct {
	label types.CalibrationLabel
	path  string
}

// discoverSamples walks the two label directories; a missing one is not an
// error, calibration reports the missing class itself.
func discoverSamples(root string) ([]sampleDir, error) {
	out := []sampleDir{}
	for _, label := range []types.CalibrationLabel{types.LabelReal, types.LabelSpoof} {
		entries, err := os.ReadDir(filepath.Join(root, string(label)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		names := []string{}
		for _, entry := range entries {
			if entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, sampleDir{label: label, path: filepath.Join(root, string(label), name)})
		}
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
	calibrateCmd.Flags().StringVarP(&calibrateDir, "dir", "d", "", "Dataset root containing real/ and spoof/")
}
