package browser

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/bloomhound/bloomhound/internal/config"
)

// Driver wraps a Chromium instance behind the small capability surface the
// crawl pipeline needs: isolated pages, navigation, scroll control and
// element queries. Failing to launch the browser is the one fatal error of
// a run; everything downstream degrades softly.
type Driver struct {
	browser *rod.Browser
	cfg     *config.Config
	logger  *slog.Logger
}

// New launches a Chromium instance and connects to it.
func New(cfg *config.Config, logger *slog.Logger) (*Driver, error) {
	l := launcher.New().
		Headless(cfg.Browser.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", fmt.Sprintf("%d,%d", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight))

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(launchURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	logger.Info("browser ready",
		"headless", cfg.Browser.Headless,
		"stealth", cfg.Browser.Stealth,
		"viewport", fmt.Sprintf("%dx%d", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight),
	)

	return &Driver{
		browser: b,
		cfg:     cfg,
		logger:  logger.With("component", "browser"),
	}, nil
}

// Close shuts down the browser instance.
func (d *Driver) Close() error {
	return d.browser.Close()
}

// NewPage opens an isolated page with the configured viewport. The caller
// owns the page and must close it on every exit path.
func (d *Driver) NewPage() (*rod.Page, error) {
	var page *rod.Page
	var err error
	if d.cfg.Browser.Stealth {
		page, err = stealth.Page(d.browser)
	} else {
		page, err = d.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             d.cfg.Browser.ViewportWidth,
		Height:            d.cfg.Browser.ViewportHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	return page, nil
}

// ViewportHeight returns the configured viewport height in pixels.
func (d *Driver) ViewportHeight() int { return d.cfg.Browser.ViewportHeight }

// Navigate drives a page to a URL and returns once base content is parsed.
// Stability after that point is best-effort: a stability timeout is logged,
// not returned.
func (d *Driver) Navigate(page *rod.Page, url string) error {
	if err := page.Timeout(d.cfg.Browser.NavTimeout).Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.Timeout(d.cfg.Browser.NavTimeout).WaitStable(300 * time.Millisecond); err != nil {
		d.logger.Debug("page stability timeout, continuing", "url", url, "error", err)
	}
	return nil
}

// ScrollHeight reads the document scroll height.
func (d *Driver) ScrollHeight(page *rod.Page) (int, error) {
	res, err := page.Eval(`document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// ScrollY reads the current vertical scroll offset.
func (d *Driver) ScrollY(page *rod.Page) (int, error) {
	res, err := page.Eval(`window.pageYOffset`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// ScrollToTop jumps to the top of the page without animation.
func (d *Driver) ScrollToTop(page *rod.Page) error {
	_, err := page.Eval(`window.scrollTo({top: 0, behavior: 'instant'})`)
	return err
}

// ScrollToPosition smooth-scrolls to the target offset and polls the actual
// position until it lands within the configured pixel tolerance. Animation
// overrun is logged, never failed: a late scroll still reveals tiles.
func (d *Driver) ScrollToPosition(page *rod.Page, position int) {
	tolerance := d.cfg.Scroll.Tolerance

	current, err := d.ScrollY(page)
	if err == nil && abs(current-position) < tolerance {
		return
	}

	if _, err := page.Eval(fmt.Sprintf(`window.scrollTo({top: %d, behavior: 'smooth'})`, position)); err != nil {
		d.logger.Debug("scroll eval failed", "position", position, "error", err)
		return
	}

	deadline := time.Now().Add(d.cfg.Scroll.MaxWait)
	arrived := false
	for time.Now().Before(deadline) {
		time.Sleep(d.cfg.Scroll.CheckInterval)
		pos, err := d.ScrollY(page)
		if err != nil {
			continue
		}
		if abs(pos-position) < tolerance {
			arrived = true
			break
		}
	}
	if !arrived {
		final, _ := d.ScrollY(page)
		d.logger.Warn("scroll timeout", "target", position, "final", final)
	}

	// Settle delay lets lazily-mounted content attach.
	time.Sleep(d.cfg.Scroll.ScrollWait)
}

// DismissModal waits for a blocking modal's close control and force-clicks
// it in page context, avoiding the scroll side effects of a pointer click.
// A page without a modal is not an error.
func (d *Driver) DismissModal(page *rod.Page, closeSelector string) {
	el, err := page.Timeout(d.cfg.Browser.ModalTimeout).Element(closeSelector)
	if err != nil {
		d.logger.Debug("no modal detected", "selector", closeSelector)
		return
	}

	d.logger.Info("modal detected, dismissing")
	if _, err := el.Eval(`this.click()`); err != nil {
		d.logger.Warn("modal close click failed", "error", err)
		return
	}
	time.Sleep(d.cfg.Browser.ModalCloseWait)

	// Verify the close control is actually gone.
	els, err := page.Elements(closeSelector)
	if err == nil && len(els) > 0 {
		if visible, verr := els.First().Visible(); verr == nil && visible {
			d.logger.Warn("modal close button still visible after dismissal")
			return
		}
	}
	d.logger.Debug("modal dismissed")
}

// InViewport reports whether the element is visible and its bounding box
// intersects the viewport vertically.
func (d *Driver) InViewport(el *rod.Element) bool {
	visible, err := el.Visible()
	if err != nil || !visible {
		return false
	}
	shape, err := el.Shape()
	if err != nil {
		// Bounding box unavailable; fall back to the visibility result.
		return true
	}
	box := shape.Box()
	if box == nil {
		return true
	}
	return BoxIntersectsViewport(box.Y, box.Height, float64(d.ViewportHeight()))
}

// ContainerAbove reports whether the element has scrolled entirely above the
// viewport, i.e. its bottom edge is at a negative position.
func (d *Driver) ContainerAbove(el *rod.Element) bool {
	shape, err := el.Shape()
	if err != nil {
		return false
	}
	box := shape.Box()
	if box == nil {
		return false
	}
	return box.Y+box.Height < 0
}

// BoxIntersectsViewport reports whether a vertical span [y, y+height)
// overlaps a viewport of the given height.
func BoxIntersectsViewport(y, height, viewportHeight float64) bool {
	if y+height < 0 {
		return false
	}
	if y > viewportHeight {
		return false
	}
	return true
}

// NormalizeMediaURL trims a media src and upgrades protocol-relative URLs.
func NormalizeMediaURL(src string) string {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
