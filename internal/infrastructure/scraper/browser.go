package scraper

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/chromedp/chromedp"
)

const pageLoadDelay = 4 * time.Second

// Browser owns a shared headless Chrome allocator. Each Fetch call gets its
// own tab context so one stuck page cannot poison the others.
type Browser struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	pageTimeout time.Duration
}

func NewBrowser(pageTimeout time.Duration) *Browser {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", "pl-PL"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)

	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Browser{
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
		pageTimeout: pageTimeout,
	}
}

func (b *Browser) Close() {
	b.cancelAlloc()
}

// evaluate opens the url in a fresh tab and runs the extraction script,
// decoding its result into out.
func (b *Browser) evaluate(ctx context.Context, url, script string, out any) error {
	tabCtx, cancel := chromedp.NewContext(b.allocCtx, chromedp.WithLogf(func(string, ...any) {}))
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.pageTimeout)
	defer cancelTimeout()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(pageLoadDelay),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(time.Second),
		chromedp.Evaluate(script, out),
	)
	if err != nil {
		return fmt.Errorf("chromedp.Run: %w", err)
	}

	return nil
}

// parsePrice turns marketplace price text ("1 250 zł", "1250,00 zł") into
// whole złoty. Returns 0 for free or negotiation-only listings.
func parsePrice(text string) int64 {
	// Cut decimal groszy before stripping separators.
	if i := strings.IndexAny(text, ",."); i >= 0 {
		tail := text[i+1:]
		if len(tail) >= 2 && unicode.IsDigit(rune(tail[0])) && unicode.IsDigit(rune(tail[1])) {
			text = text[:i]
		}
	}

	var digits strings.Builder
	for _, r := range text {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0
	}

	price, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}

	return price
}
