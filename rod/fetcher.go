// Package rod provides a recipeclip.Fetcher backed by headless Chrome, for
// pages that only render their recipe client side.
package rod

import (
	"context"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/devices"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/scsmith60/recipeclip"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// recycled. Chrome accumulates memory under load and the baseline never
// returns to initial levels even with proper page cleanup.
const DefaultMaxPages = 75

// settleDelay gives client frameworks a beat after load to hydrate the DOM
// before the HTML snapshot is taken.
const settleDelay = 500 * time.Millisecond

// Ensure Fetcher implements recipeclip.Fetcher at compile time.
var _ recipeclip.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. The
// browser launches lazily on first use and is recycled after maxPages
// renders. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	maxPages int

	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int
	closed    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets how many pages are rendered before the browser is
// recycled. Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher. The browser is not launched until the
// first Fetch, so construction cannot fail and costs nothing when no page
// ever needs client rendering. Close must be called when the Fetcher is no
// longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL and returns the rendered HTML. IdentityMobile
// emulates a phone, which matters on platforms that only serve embedded
// state to mobile clients.
func (f *Fetcher) Fetch(ctx context.Context, url string, identity recipeclip.Identity) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquireBrowser()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if identity == recipeclip.IdentityMobile {
		if err := page.Emulate(devices.IPhoneX); err != nil {
			return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "emulating mobile device: %v", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "waiting for %s to load: %v", url, err)
	}

	select {
	case <-time.After(settleDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	html, err := page.HTML()
	if err != nil {
		return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "reading rendered HTML: %v", err)
	}

	f.countPage()
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.closeBrowserLocked()
}

// acquireBrowser returns the live browser, launching or recycling as needed.
func (f *Fetcher) acquireBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, recipeclip.Errorf(recipeclip.EINTERNAL, "fetcher is closed")
	}

	if f.browser != nil && f.pageCount >= f.maxPages {
		f.recycleBrowserLocked()
	}

	if f.browser == nil {
		if err := f.launchBrowserLocked(); err != nil {
			return nil, err
		}
	}

	return f.browser, nil
}

func (f *Fetcher) countPage() {
	f.mu.Lock()
	f.pageCount++
	f.mu.Unlock()
}

// launchBrowserLocked starts a new browser instance with stability flags.
// Must be called with mu held.
func (f *Fetcher) launchBrowserLocked() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return recipeclip.Errorf(recipeclip.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return recipeclip.Errorf(recipeclip.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	f.browser = browser
	f.launcher = lnchr
	f.pageCount = 0
	return nil
}

// closeBrowserLocked shuts down the current browser and launcher.
// Must be called with mu held.
func (f *Fetcher) closeBrowserLocked() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// recycleBrowserLocked starts a fresh browser and closes the old one. If the
// new launch fails the old browser is kept rather than leaving no browser at
// all. Must be called with mu held.
func (f *Fetcher) recycleBrowserLocked() {
	oldBrowser := f.browser
	oldLauncher := f.launcher
	f.browser = nil
	f.launcher = nil

	if err := f.launchBrowserLocked(); err != nil {
		f.browser = oldBrowser
		f.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
}
