package canvas

import (
	"context"
	"math"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Rasterizer turns preview HTML into a PNG with headless Chrome.
type Rasterizer struct {
	Timeout time.Duration
}

func NewRasterizer() *Rasterizer {
	return &Rasterizer{Timeout: 30 * time.Second}
}

// PNG loads html into a blank tab sized widthPx by heightPx and captures it.
func (r *Rasterizer) PNG(ctx context.Context, html string, widthPx, heightPx float64) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	if r.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, r.Timeout)
		defer cancelTimeout()
	}

	var png []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(math.Ceil(widthPx)), int64(math.Ceil(heightPx))),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, err := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				Do(ctx)
			if err != nil {
				return err
			}
			png = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return png, nil
}
