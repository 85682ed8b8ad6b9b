package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/logger"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".bmp": true,
}

func loadImage(path string) (*biometric.ImageBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	buf, err := biometric.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// imageFiles lists the image files directly inside dir, sorted by name so
// numbered frame dumps come back in capture order.
func imageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// loadFrames decodes the newest maxFrames images in dir. Older files are
// never read. Files that fail to decode are skipped the same way the HTTP API
// drops bad frames.
func loadFrames(dir string, maxFrames int) ([]*biometric.ImageBuffer, error) {
	files, err := imageFiles(dir)
	if err != nil {
		return nil, err
	}
	if maxFrames > 0 && len(files) > maxFrames {
		files = files[len(files)-maxFrames:]
	}
	frames := make([]*biometric.ImageBuffer, 0, len(files))
	for _, file := range files {
		frame, err := loadImage(file)
		if err != nil {
			logger.Warning("skipping frame", logger.LoggerOptions{Key: "error", Data: err.Error()})
			continue
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
