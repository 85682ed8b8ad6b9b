package biometric

import (
	"math/rand"
)

func uniformImage(w, h int, r, g, b byte) *ImageBuffer {
	samples := make([]byte, w*h*channels)
	for i := 0; i < len(samples); i += channels {
		samples[i], samples[i+1], samples[i+2], samples[i+3] = r, g, b, 255
	}
	return &ImageBuffer{Width: w, Height: h, Samples: samples}
}

// checkerboard alternates black and white squares of side period/2, so the
// pattern repeats every period pixels in both directions.
func checkerboard(w, h, period int) *ImageBuffer {
	buf := uniformImage(w, h, 0, 0, 0)
	half := period / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/half+y/half)%2 == 0 {
				setPixel(buf, x, y, 255, 255, 255)
			}
		}
	}
	return buf
}

// texturedImage is a smooth gradient with seeded per-pixel noise of the
// given amplitude.
func texturedImage(w, h int, seed int64, amplitude int) *ImageBuffer {
	rng := rand.New(rand.NewSource(seed))
	buf := uniformImage(w, h, 0, 0, 0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := 60 + (x*120)/w + (y*40)/h
			v := clampByte(base + rng.Intn(2*amplitude+1) - amplitude)
			setPixel(buf, x, y, v, clampByte(int(v)-10), clampByte(int(v)-25))
		}
	}
	return buf
}

func copyImage(buf *ImageBuffer) *ImageBuffer {
	samples := make([]byte, len(buf.Samples))
	copy(samples, buf.Samples)
	return &ImageBuffer{Width: buf.Width, Height: buf.Height, Samples: samples}
}

func setPixel(buf *ImageBuffer, x, y int, r, g, b byte) {
	i := buf.offset(x, y)
	buf.Samples[i], buf.Samples[i+1], buf.Samples[i+2], buf.Samples[i+3] = r, g, b, 255
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func identicalBurst(n int, seed int64) []*ImageBuffer {
	base := texturedImage(320, 240, seed, 40)
	frames := make([]*ImageBuffer, n)
	for i := range frames {
		frames[i] = copyImage(base)
	}
	return frames
}

func noisyBurst(n int, seed int64) []*ImageBuffer {
	frames := make([]*ImageBuffer, n)
	for i := range frames {
		frames[i] = texturedImage(320, 240, seed+int64(i)*7919, 40)
	}
	return frames
}
