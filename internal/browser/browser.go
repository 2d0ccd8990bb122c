// Package browser provides isolated, single-use browser sessions that can
// load a page, wait for it to render and hand back parsed markup.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrTimeout is returned by WaitForSelector when nothing matched in time.
	ErrTimeout = errors.New("timed out waiting for selector")
	// ErrNotFound is returned when a container expected on the page is missing.
	ErrNotFound = errors.New("element not found")
	// ErrClosed is returned when a session is used after Close.
	ErrClosed = errors.New("session is closed")
)

// Session is a single cookie-free browser session, sessions are never
// shared between goroutines. Close must be called on every exit path.
type Session interface {
	Navigate(ctx context.Context, url string) error
	// WaitForSelector blocks until at least one node matches selector,
	// returning ErrTimeout once timeout has passed.
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	// ExtractChildren returns the list entries (li) of the first node
	// matching selector, or ErrNotFound.
	ExtractChildren(ctx context.Context, selector string) (*goquery.Selection, error)
	Close() error
}

// Launcher acquires new sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// ChildrenOf parses markup and returns the li children of the first node
// matching selector. Other children (banners, separators) are not entries.
func ChildrenOf(markup, selector string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	container := doc.Find(selector).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return container.ChildrenFiltered("li"), nil
}

func matches(markup, selector string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return false, fmt.Errorf("parse page: %w", err)
	}
	return doc.Find(selector).Length() > 0, nil
}
