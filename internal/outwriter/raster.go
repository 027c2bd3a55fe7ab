package outwriter

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/chromedp/chromedp"

	"github.com/huangsam/motionchart/schema"
)

// JPEGQuality is used when re-encoding screenshots as JPEG.
const JPEGQuality = 90

// screenshotSVG renders an SVG document in headless Chrome and returns a PNG.
// Tests swap it out to avoid launching a browser.
var screenshotSVG = chromeScreenshot

// RasterizeSVG renders the SVG document to PNG or JPEG.
func RasterizeSVG(ctx context.Context, svg string, width, height float64, format schema.OutputMode, w io.Writer) error {
	if format != schema.PNGOut && format != schema.JPEGOut {
		return fmt.Errorf("unsupported image format %q", format)
	}
	buf, err := screenshotSVG(ctx, svg, int64(max(width, 1)), int64(max(height, 1)))
	if err != nil {
		return err
	}
	if len(buf) == 0 {
		return errors.New("screenshot buffer is empty")
	}

	if format == schema.PNGOut {
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("failed to write PNG data: %w", err)
		}
		return nil
	}
	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("failed to decode PNG screenshot: %w", err)
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return nil
}

// chromeScreenshot loads the SVG as a data URI and captures the svg element.
func chromeScreenshot(ctx context.Context, svg string, width, height int64) ([]byte, error) {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(width, height),
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	return buf, nil
}
