package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/chromedp/chromedp"
)

// snapshotTimeout bounds a whole headless browser session
const snapshotTimeout = 60 * time.Second

// Snapshot loads html in headless Chrome and writes a full-page PNG to out.
// Chrome or Chromium must be installed.
func Snapshot(ctx context.Context, html []byte, out io.Writer) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1400, 1000),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, snapshotTimeout)
	defer cancel()

	url := "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(html)

	var png []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}

	if _, err := io.Copy(out, bytes.NewReader(png)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
