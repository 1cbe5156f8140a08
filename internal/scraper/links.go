package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultPathPrefix = "/find-jobs-all/"
	DefaultSuffix     = "-pt"
)

// DiscoverLinks fetches the listing index and returns the absolute URLs of
// every anchor under pathPrefix whose path ends in suffix. Order of first
// appearance is kept and duplicates are dropped.
func DiscoverLinks(ctx context.Context, fetcher Fetcher, indexURL, pathPrefix, suffix string) ([]string, error) {
	if pathPrefix == "" {
		pathPrefix = DefaultPathPrefix
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}

	body, err := fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing index: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing index: %w", err)
	}

	var links []string
	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.Contains(href, pathPrefix) {
			return
		}
		link := CollapseSegments(absoluteURL(indexURL, href))
		target, err := url.Parse(link)
		if err != nil || !strings.HasSuffix(strings.TrimSuffix(target.Path, "/"), suffix) {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links, nil
}

// CollapseSegments removes a path segment that repeats the one before it,
// so /find-jobs-all/find-jobs-all/x-pt becomes /find-jobs-all/x-pt.
func CollapseSegments(link string) string {
	target, err := url.Parse(link)
	if err != nil || target.Path == "" {
		return link
	}

	segments := strings.Split(target.Path, "/")
	collapsed := make([]string, 0, len(segments))
	for i, segment := range segments {
		if i > 0 && segment != "" && segment == segments[i-1] {
			continue
		}
		collapsed = append(collapsed, segment)
	}
	target.Path = strings.Join(collapsed, "/")
	target.RawPath = ""
	return target.String()
}
