package mirror

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestResolveURL(t *testing.T) {
	base, _ := url.Parse("http://books.toscrape.com/catalogue/category/books/travel_2/index.html")
	tests := map[string]string{
		"../../../../media/cache/27/a5/x.jpg":  "http://books.toscrape.com/media/cache/27/a5/x.jpg",
		"/static/oscar/css/styles.css":         "http://books.toscrape.com/static/oscar/css/styles.css",
		"page-2.html":                          "http://books.toscrape.com/catalogue/category/books/travel_2/page-2.html",
		"https://cdn.example.com/a/b.png":      "https://cdn.example.com/a/b.png",
		"//cdn.example.com/lib.css":            "http://cdn.example.com/lib.css",
		"  ../../../../media/y.jpg  ":          "http://books.toscrape.com/media/y.jpg",
		"http://books.toscrape.com/../odd.jpg": "http://books.toscrape.com/../odd.jpg",
	}
	for in, want := range tests {
		got, err := ResolveURL(base, in)
		if err != nil {
			t.Errorf("ResolveURL(%q) returned error: %v", in, err)
			continue
		}
		if got.String() != want {
			t.Errorf("ResolveURL(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestResolveURLAbsoluteIsNoOp(t *testing.T) {
	bases := []string{"http://example.com/", "https://other.org/deep/path/page.html"}
	abs := []string{"http://example.com/a.jpg", "https://x.org/q?v=1", "ftp://files.net/f.css"}
	for _, b := range bases {
		base, _ := url.Parse(b)
		for _, a := range abs {
			got, err := ResolveURL(base, a)
			if err != nil || got.String() != a {
				t.Errorf("ResolveURL(%q, %q) = %v, %v; want %q", b, a, got, err, a)
			}
		}
	}
}

func TestResolveURLInvalid(t *testing.T) {
	base, _ := url.Parse("http://example.com/")
	if _, err := ResolveURL(base, "http://[::1"); err == nil {
		t.Error("expected an error for a malformed URL")
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"http://example.com/media/cover.jpg":       "cover.jpg",
		"http://example.com/static/styles.css?v=2": "styles.css",
		"http://example.com/a/b/":                  "b",
	}
	for in, want := range tests {
		u, _ := url.Parse(in)
		got, err := FileName(u)
		if err != nil || got != want {
			t.Errorf("FileName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	for _, in := range []string{"http://example.com", "http://example.com/"} {
		u, _ := url.Parse(in)
		if _, err := FileName(u); !errors.Is(err, errNoFileName) {
			t.Errorf("FileName(%q) error = %v; want errNoFileName", in, err)
		}
	}
}

func TestIsFavicon(t *testing.T) {
	tests := map[string]bool{
		"http://example.com/favicon.ico":        true,
		"http://example.com/static/FAVICON.ICO": true,
		"http://example.com/styles.css":         false,
		"http://example.com/icon.ico.css":       false,
	}
	for in, want := range tests {
		u, _ := url.Parse(in)
		if got := IsFavicon(u); got != want {
			t.Errorf("IsFavicon(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestExtractReferences(t *testing.T) {
	page := `<html><head>
<link rel="stylesheet" href="static/a.css">
<link rel="icon" href="favicon.ico">
</head><body>
<img src="one.jpg"><img alt="no src"><img src="   ">
<link href="static/b.css">
<img src="http://cdn.example.com/two.png">
</body></html>`
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	base, _ := url.Parse("http://example.com/")

	refs := ExtractReferences(doc, base)

	want := []struct {
		kind     ResourceKind
		original string
		resolved string
	}{
		{KindImage, "one.jpg", "http://example.com/one.jpg"},
		{KindImage, "http://cdn.example.com/two.png", "http://cdn.example.com/two.png"},
		{KindStylesheet, "static/a.css", "http://example.com/static/a.css"},
		{KindStylesheet, "favicon.ico", "http://example.com/favicon.ico"},
		{KindStylesheet, "static/b.css", "http://example.com/static/b.css"},
	}
	if len(refs) != len(want) {
		t.Fatalf("got %d references; want %d", len(refs), len(want))
	}
	for i, w := range want {
		r := refs[i]
		if r.Kind != w.kind || r.Original != w.original || r.Resolved.String() != w.resolved {
			t.Errorf("refs[%d] = {%v %q %v}; want {%v %q %q}", i, r.Kind, r.Original, r.Resolved, w.kind, w.original, w.resolved)
		}
	}
}

func TestLayout(t *testing.T) {
	l := NewLayout("out", "fiction")
	if got := l.LocalRef(KindImage, "cover.jpg"); got != "images/fiction/cover.jpg" {
		t.Errorf("LocalRef(image) = %q", got)
	}
	if got := l.LocalRef(KindStylesheet, "s.css"); got != "styles/fiction/s.css" {
		t.Errorf("LocalRef(stylesheet) = %q", got)
	}
	if NewLayout("out", "fiction") != l {
		t.Error("same inputs should give the same layout")
	}
	if got := NewLayout("out", "").LocalRef(KindImage, "a.png"); got != "images/a.png" {
		t.Errorf("LocalRef without subfolder = %q", got)
	}
}
