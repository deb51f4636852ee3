package viewer

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerE2E(t *testing.T) {
	if os.Getenv("SCHEDULE_E2E") != "1" {
		t.Skip("set SCHEDULE_E2E=1 to run browser tests")
	}

	s, _ := newTestServer(t)
	path := writeFile(t, t.TempDir(), "schedule.pdf", "%PDF-1.4")
	require.NoError(t, s.Load(context.Background(), path))

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	t.Run("OpenCourseDetails", func(t *testing.T) {
		var student, details string
		err := chromedp.Run(ctx,
			chromedp.Navigate(ts.URL+"/"),
			chromedp.WaitVisible(`#timetable`, chromedp.ByQuery),
			chromedp.Text(`#student`, &student, chromedp.ByQuery),
			chromedp.Click(`a.info[href="/courses/1"]`, chromedp.ByQuery),
			chromedp.WaitVisible(`#details`, chromedp.ByQuery),
			chromedp.Text(`#details`, &details, chromedp.ByQuery),
		)
		require.NoError(t, err)

		assert.Contains(t, student, "Ahmed Ali")
		assert.True(t, strings.Contains(details, "MA 201"), details)
	})
}
