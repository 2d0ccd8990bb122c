package browser

import (
	"context"
	"farescan/internal/components/telemetry"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const listSelector = `ol[aria-label="Voos disponíveis."]`

const renderedPage = `<html><body>
<ol aria-label="Voos disponíveis.">
	<li>first</li>
	<li>second</li>
</ol>
</body></html>`

const loadingPage = `<html><body><div class="spinner"></div></body></html>`

func TestChildrenOf(t *testing.T) {
	children, err := ChildrenOf(renderedPage, listSelector)
	require.NoError(t, err)
	require.Equal(t, 2, children.Length())
	require.Equal(t, "second", children.Eq(1).Text())

	_, err = ChildrenOf(loadingPage, listSelector)
	require.ErrorIs(t, err, ErrNotFound)

	children, err = ChildrenOf(`<ol aria-label="Voos disponíveis.">
		<div class="banner">promo</div>
		<li>only</li>
		<span>separator</span>
	</ol>`, listSelector)
	require.NoError(t, err)
	require.Equal(t, 1, children.Length())
	require.Equal(t, "only", children.Text())
}

func newLauncher() HTTPLauncher {
	return NewHTTPLauncher(HTTPOptions{PollInterval: 10 * time.Millisecond}, &telemetry.Recorder{})
}

func TestHTTPSessionRendersAfterPolling(t *testing.T) {
	var hits atomic.Int64
	var cookiesSent atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.Cookies()) > 0 {
			cookiesSent.Add(1)
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: fmt.Sprint(hits.Load())})
		// the list only shows up on the third fetch
		if hits.Add(1) < 3 {
			fmt.Fprint(w, loadingPage)
			return
		}
		fmt.Fprint(w, renderedPage)
	}))
	defer server.Close()

	ctx := context.Background()
	session, err := newLauncher().Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Navigate(ctx, server.URL))
	require.NoError(t, session.WaitForSelector(ctx, listSelector+" > li", time.Second))

	children, err := session.ExtractChildren(ctx, listSelector)
	require.NoError(t, err)
	require.Equal(t, 2, children.Length())

	require.Equal(t, int64(3), hits.Load())
	require.Zero(t, cookiesSent.Load(), "session must not send cookies back")
}

func TestHTTPSessionTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, loadingPage)
	}))
	defer server.Close()

	ctx := context.Background()
	session, err := newLauncher().Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Navigate(ctx, server.URL))

	start := time.Now()
	err = session.WaitForSelector(ctx, listSelector+" > li", 50*time.Millisecond)
	require.ErrorIs(t, err, ErrTimeout)
	require.Less(t, time.Since(start), time.Second)

	_, err = session.ExtractChildren(ctx, listSelector)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPSessionErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	ctx := context.Background()
	session, err := newLauncher().Launch(ctx)
	require.NoError(t, err)

	err = session.Navigate(ctx, server.URL)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "403"), err.Error())

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
	_, err = session.ExtractChildren(ctx, listSelector)
	require.ErrorIs(t, err, ErrClosed)
}

func TestHTTPSessionContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, loadingPage)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	session, err := newLauncher().Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Navigate(ctx, server.URL))
	cancel()
	err = session.WaitForSelector(ctx, listSelector+" > li", time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}
