package browser

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// Collector names one element family to harvest during a scroll pass. Visit
// receives each visible matching element; it must be idempotent, since the
// same element can surface at several scroll positions. Visit errors skip
// the element without aborting the pass.
type Collector struct {
	Name     string
	Selector string
	Visit    func(el *rod.Element) error
}

// ScrollCollect steps a page from top to bottom, invoking every collector on
// the elements visible at each position. The loop ends when the document
// height stops growing or maxScroll (when positive) is reached.
func (d *Driver) ScrollCollect(page *rod.Page, collectors []Collector, step int, pause time.Duration, maxScroll int) {
	height, err := d.ScrollHeight(page)
	if err != nil {
		d.logger.Debug("scroll-collect: cannot measure page", "error", err)
		return
	}

	pos := 0
	for pos < height && (maxScroll <= 0 || pos < maxScroll) {
		// Instant jump: collected pages are short and smooth-scroll latency
		// is not worth polling for here.
		if _, err := page.Eval(fmt.Sprintf(`window.scrollTo(0, %d)`, pos)); err != nil {
			d.logger.Debug("scroll-collect: scroll failed", "position", pos, "error", err)
			return
		}
		time.Sleep(pause)

		for _, c := range collectors {
			els, err := page.Elements(c.Selector)
			if err != nil {
				d.logger.Debug("scroll-collect: selector failed", "collector", c.Name, "error", err)
				continue
			}
			for i, el := range els {
				visible, err := el.Visible()
				if err != nil || !visible {
					continue
				}
				if err := el.ScrollIntoView(); err != nil {
					continue
				}
				if err := c.Visit(el); err != nil {
					d.logger.Debug("scroll-collect: visit failed",
						"collector", c.Name, "index", i, "error", err)
				}
			}
		}

		newHeight, err := d.ScrollHeight(page)
		if err != nil || newHeight == height {
			break
		}
		height = newHeight
		pos += step
	}
}
