package browser

import (
	"context"
	"farescan/internal/components/telemetry"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36"

type HTTPOptions struct {
	// PollInterval is how long to wait between re-fetches of a page that
	// has not rendered the awaited selector yet.
	PollInterval time.Duration
	// RequestTimeout bounds a single fetch.
	RequestTimeout time.Duration
	UserAgent      string
}

// HTTPLauncher serves sessions that fetch pages without executing scripts,
// for results pages that are rendered server-side.
type HTTPLauncher struct {
	options HTTPOptions
	tel     telemetry.API
}

func NewHTTPLauncher(options HTTPOptions, tel telemetry.API) HTTPLauncher {
	if options.PollInterval <= 0 {
		options.PollInterval = time.Second
	}
	if options.RequestTimeout <= 0 {
		options.RequestTimeout = time.Second * 30
	}
	if options.UserAgent == "" {
		options.UserAgent = defaultUserAgent
	}
	return HTTPLauncher{options: options, tel: tel}
}

func (l HTTPLauncher) Launch(ctx context.Context) (Session, error) {
	client := resty.New()
	// every session starts without cookies and never keeps any
	client.SetCookieJar(nil)
	client.SetTimeout(l.options.RequestTimeout)
	client.SetHeader("user-agent", l.options.UserAgent)
	client.SetHeader("accept-language", "pt-BR,pt;q=0.9")
	if l.tel != nil {
		telemetry.InstrumentResty(client, l.tel)
	}
	return &httpSession{client: client, poll: l.options.PollInterval}, nil
}

type httpSession struct {
	client *resty.Client
	poll   time.Duration
	url    string
	markup string
}

func (s *httpSession) fetch(ctx context.Context) error {
	if s.client == nil {
		return ErrClosed
	}
	res, err := s.client.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("unexpected status %s", res.Status())
	}
	s.markup = res.String()
	return nil
}

func (s *httpSession) Navigate(ctx context.Context, url string) error {
	s.url = url
	err := s.fetch(ctx)
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *httpSession) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		found, err := matches(s.markup, selector)
		if err != nil {
			return err
		}
		if found {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%w: %s after %s", ErrTimeout, selector, timeout)
		}
		timer := time.NewTimer(min(s.poll, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = s.fetch(ctx)
		if err != nil {
			return fmt.Errorf("refresh %s: %w", s.url, err)
		}
	}
}

func (s *httpSession) ExtractChildren(ctx context.Context, selector string) (*goquery.Selection, error) {
	if s.client == nil {
		return nil, ErrClosed
	}
	return ChildrenOf(s.markup, selector)
}

func (s *httpSession) Close() error {
	if s.client == nil {
		return nil
	}
	s.client.GetClient().CloseIdleConnections()
	s.client = nil
	return nil
}
