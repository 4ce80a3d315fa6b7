package easel

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot to be captured after the next
// render pass. The resulting PNG is written to ScreenshotDir with a
// timestamped filename. Safe to call from any callback.
func (c *Context) Screenshot(label string) {
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// flushScreenshots captures the surface for every queued label and writes
// each as a PNG file. Called from the render task after the render
// procedure returns.
func (c *Context) flushScreenshots() {
	if len(c.screenshotQueue) == 0 {
		return
	}

	if err := os.MkdirAll(c.ScreenshotDir, 0o755); err != nil {
		c.log.Errorf("screenshot: mkdir %s: %v", c.ScreenshotDir, err)
		c.screenshotQueue = c.screenshotQueue[:0]
		return
	}

	bounds := c.surface.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	c.surface.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a != 0 && a != 255 {
			r = uint8(int(r) * 255 / int(a))
			g = uint8(int(g) * 255 / int(a))
			b = uint8(int(b) * 255 / int(a))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}

	stamp := time.Now().Format("20060102-150405.000")
	for _, label := range c.screenshotQueue {
		name := fmt.Sprintf("%s-%s.png", stamp, sanitizeLabel(label))
		path := c.ScreenshotDir + string(os.PathSeparator) + name
		if err := writePNG(path, img); err != nil {
			c.log.Errorf("screenshot: %v", err)
		}
	}
	c.screenshotQueue = c.screenshotQueue[:0]
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sanitizeLabel replaces filesystem-hostile characters in a label.
func sanitizeLabel(label string) string {
	if label == "" {
		return "frame"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, label)
}
