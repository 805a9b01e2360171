package detail

import (
	"github.com/go-rod/rod"

	"github.com/bloomhound/bloomhound/internal/browser"
	"github.com/bloomhound/bloomhound/internal/extract"
	"github.com/bloomhound/bloomhound/internal/types"
)

// mediaInfo reads the lifestyle gallery of a detail page. A video at any
// figure takes priority as the main media; otherwise figures 0, 1 and 2
// supply the main and secondary detail images in order.
func (f *Fetcher) mediaInfo(page *rod.Page) *types.MediaInfo {
	figures, err := page.Elements(extract.DetailLifestyleFigure)
	if err != nil || len(figures) == 0 {
		f.logger.Debug("no lifestyle media found")
		return nil
	}

	var info types.MediaInfo
	for idx, fig := range figures {
		if info.MainDetailSrc == nil {
			if src := videoSrc(fig); src != "" {
				s := src
				info.MainDetailSrc = &s
				info.IsMainDetailVideo = true
			}
		}

		src := figureImageSrc(fig)
		if src == "" {
			continue
		}
		switch idx {
		case 0:
			if info.MainDetailSrc == nil {
				s := src
				info.MainDetailSrc = &s
			}
		case 1:
			s := src
			info.DetailImage1Src = &s
		case 2:
			s := src
			info.DetailImage2Src = &s
		}
	}

	if info.MainDetailSrc == nil && info.DetailImage1Src == nil && info.DetailImage2Src == nil {
		return nil
	}
	return &info
}

// videoSrc reads a figure's lazy video source attribute, if any.
func videoSrc(fig *rod.Element) string {
	videos, err := fig.Elements("video")
	if err != nil || len(videos) == 0 {
		return ""
	}
	src, err := videos.First().Attribute("data-in-view-video-src")
	if err != nil || src == nil {
		return ""
	}
	return browser.NormalizeMediaURL(*src)
}

// figureImageSrc reads the first picture img source of a figure, if any.
func figureImageSrc(fig *rod.Element) string {
	pictures, err := fig.Elements("picture")
	if err != nil || len(pictures) == 0 {
		return ""
	}
	imgs, err := pictures.First().Elements("img")
	if err != nil || len(imgs) == 0 {
		return ""
	}
	src, err := imgs.First().Attribute("src")
	if err != nil || src == nil {
		return ""
	}
	return browser.NormalizeMediaURL(*src)
}
