package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

type ChromeOptions struct {
	// ExecPath overrides the chrome binary chromedp looks up on its own.
	ExecPath string
	Headless bool
}

// ChromeLauncher starts a fresh incognito chrome process per session.
type ChromeLauncher struct {
	options ChromeOptions
}

func NewChromeLauncher(options ChromeOptions) ChromeLauncher {
	return ChromeLauncher{options: options}
}

func (l ChromeLauncher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", l.options.Headless),
		chromedp.Flag("incognito", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1366, 900),
	)
	if l.options.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.options.ExecPath))
	}
	return opts
}

func (l ChromeLauncher) Launch(ctx context.Context) (Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, l.allocatorOptions()...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// the first Run starts the browser, it must not carry a deadline or the
	// browser is killed once the deadline passes
	err := chromedp.Run(tabCtx)
	if err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &chromeSession{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}, nil
}

type chromeSession struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// run executes actions in the tab, stopping early if the caller's ctx ends.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	err := s.run(ctx, chromedp.Navigate(url))
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *chromeSession) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(waitCtx, chromedp.WaitReady(selector, chromedp.ByQuery))
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s after %s", ErrTimeout, selector, timeout)
	}
	return fmt.Errorf("wait for %s: %w", selector, err)
}

func (s *chromeSession) ExtractChildren(ctx context.Context, selector string) (*goquery.Selection, error) {
	var markup string
	// the root node always exists, so this never waits on the page
	err := s.run(ctx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery))
	if err != nil {
		return nil, fmt.Errorf("read page markup: %w", err)
	}
	return ChildrenOf(markup, selector)
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.ctx)
		s.cancelTab()
		s.cancelAlloc()
	})
	return s.closeErr
}
