// Package catalog extracts the book site's navigation structure: the
// category list on the home page and the book list on a category page.
package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	categorySelector = "ul.nav.nav-list ul li a"
	bookSelector     = "article.product_pod h3 a"
)

// Link is a named entry of a listing page
type Link struct {
	Name string
	URL  string
}

// Categories returns the categories listed in the home page's side navigation
func Categories(htmlText, pageURL string) ([]Link, error) {
	return links(htmlText, pageURL, categorySelector, func(s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
}

// Books returns the books listed on a category page. The anchor text is
// truncated by the site, so the title attribute is preferred.
func Books(htmlText, pageURL string) ([]Link, error) {
	return links(htmlText, pageURL, bookSelector, func(s *goquery.Selection) string {
		if title, ok := s.Attr("title"); ok && strings.TrimSpace(title) != "" {
			return strings.TrimSpace(title)
		}
		return strings.TrimSpace(s.Text())
	})
}

func links(htmlText, pageURL, selector string, name func(*goquery.Selection) string) ([]Link, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var out []Link
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		out = append(out, Link{
			Name: name(s),
			URL:  base.ResolveReference(ref).String(),
		})
	})
	return out, nil
}

// CategoryFolder names the local folder for a category from the second to
// last segment of its URL path, e.g. .../books/travel_2/index.html -> travel_2.
func CategoryFolder(categoryURL string) string {
	u, err := url.Parse(categoryURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(u.Path, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

var fileNameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// BookFileName returns the file name a book page is saved under
func BookFileName(title string) string {
	name := strings.TrimSpace(fileNameReplacer.Replace(title))
	if name == "" {
		name = "book"
	}
	return name + ".html"
}
