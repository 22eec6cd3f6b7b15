package mirror

import (
	"bytes"

	"golang.org/x/net/html"
)

// Apply sets every rewrite's attribute on its node
func Apply(rewrites []Rewrite) {
	for _, rw := range rewrites {
		for i, a := range rw.node.Attr {
			if a.Key == rw.attr {
				rw.node.Attr[i].Val = rw.Value
				break
			}
		}
	}
}

// Render serializes doc back to HTML text
func Render(doc *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
