package mirror

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

var errNoFileName = errors.New("no file name in URL path")

// ResolveURL resolves ref against base. Absolute references are returned as is.
func ResolveURL(base *url.URL, ref string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}
	if u.IsAbs() {
		return u, nil
	}
	return base.ResolveReference(u), nil
}

// FileName returns the last path segment of u
func FileName(u *url.URL) (string, error) {
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		return "", fmt.Errorf("%s: %w", u, errNoFileName)
	}
	return name, nil
}

// IsFavicon reports whether u points at an .ico file
func IsFavicon(u *url.URL) bool {
	return strings.HasSuffix(strings.ToLower(u.Path), ".ico")
}

// ExtractReferences collects every <img src> and then every <link href>
// from doc, each group in document order.
func ExtractReferences(doc *html.Node, base *url.URL) []ResourceReference {
	var images, links []ResourceReference

	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "img":
				if ref, ok := newReference(n, "src", KindImage, base); ok {
					images = append(images, ref)
				}
			case "link":
				if ref, ok := newReference(n, "href", KindStylesheet, base); ok {
					links = append(links, ref)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)

	return append(images, links...)
}

// newReference builds a reference from the attr attribute of n.
// Missing or blank attributes yield no reference.
func newReference(n *html.Node, attr string, kind ResourceKind, base *url.URL) (ResourceReference, bool) {
	val, ok := attrValue(n, attr)
	if !ok || strings.TrimSpace(val) == "" {
		return ResourceReference{}, false
	}
	ref := ResourceReference{
		Kind:     kind,
		Original: val,
		node:     n,
		attr:     attr,
	}
	ref.Resolved, ref.Err = ResolveURL(base, val)
	return ref, true
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
