package mirror

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"bookscraper/applog"
)

// Mirrorer rewrites a page's images and stylesheets to local copies
type Mirrorer struct {
	fetcher Fetcher
	log     *applog.Loggers
}

// NewMirrorer creates a Mirrorer that downloads through f
func NewMirrorer(f Fetcher, log *applog.Loggers) *Mirrorer {
	return &Mirrorer{
		fetcher: f,
		log:     applog.OrDiscard(log),
	}
}

// Mirror downloads every image and stylesheet referenced by htmlText into
// destFolder/images/<subfolder> and destFolder/styles/<subfolder>, and
// returns the document with those references pointing at the local copies.
//
// A resource that fails is reported in Result.Failures and keeps its
// original reference. Only document-level problems are returned as errors.
func (m *Mirrorer) Mirror(ctx context.Context, htmlText, baseURL, destFolder, subfolder string) (*Result, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	layout := NewLayout(destFolder, subfolder)
	if err := layout.Ensure(); err != nil {
		return nil, fmt.Errorf("failed to create resource folders: %w", err)
	}

	res := &Result{}
	var rewrites []Rewrite
	for _, ref := range ExtractReferences(doc, base) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ref.Kind == KindStylesheet && ref.Resolved != nil && IsFavicon(ref.Resolved) {
			m.log.Debug.Printf("Skipping icon link %s", ref.Resolved)
			res.Skipped++
			continue
		}

		local, err := m.download(ctx, layout, ref)
		if err != nil {
			m.reportFailure(ref, err)
			res.Failures = append(res.Failures, ResourceFailure{Ref: ref, Err: err})
			continue
		}
		rewrites = append(rewrites, Rewrite{node: ref.node, attr: ref.attr, Value: local})
	}

	Apply(rewrites)
	res.Rewritten = len(rewrites)

	res.HTML, err = Render(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return res, nil
}

// download fetches one resource into its layout folder and returns the
// local reference that should replace the original.
func (m *Mirrorer) download(ctx context.Context, layout Layout, ref ResourceReference) (string, error) {
	if ref.Err != nil {
		return "", ref.Err
	}
	name, err := FileName(ref.Resolved)
	if err != nil {
		return "", err
	}

	var data []byte
	if ref.Kind == KindImage {
		data, err = m.fetcher.FetchBytes(ctx, ref.Resolved.String())
	} else {
		var text string
		text, err = m.fetcher.FetchText(ctx, ref.Resolved.String())
		data = []byte(text)
	}
	if err != nil {
		return "", err
	}

	localPath := filepath.Join(layout.Dir(ref.Kind), name)
	if err := os.WriteFile(localPath, data, 0644); err != nil {
		return "", err
	}
	m.log.Debug.Printf("Downloaded %s to %s", ref.Resolved, localPath)

	return layout.LocalRef(ref.Kind, name), nil
}

func (m *Mirrorer) reportFailure(ref ResourceReference, err error) {
	name := ref.Original
	if ref.Resolved != nil {
		if n, nerr := FileName(ref.Resolved); nerr == nil {
			name = n
		}
	}
	if ref.Kind == KindImage {
		m.log.Error.Printf("Failed to download image '%s': %v", name, err)
		return
	}
	m.log.Error.Printf("Failed to download resource '%s': %v", name, err)
}

// SaveDocument mirrors htmlText into destFolder[/subfolder] and writes the
// rewritten page there as fileName. It returns the path of the saved page.
func (m *Mirrorer) SaveDocument(ctx context.Context, destFolder, fileName, htmlText, baseURL, subfolder string) (string, *Result, error) {
	folder := destFolder
	if subfolder != "" {
		folder = filepath.Join(destFolder, subfolder)
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	res, err := m.Mirror(ctx, htmlText, baseURL, folder, subfolder)
	if err != nil {
		return "", nil, err
	}

	filePath := filepath.Join(folder, fileName)
	if err := os.WriteFile(filePath, []byte(res.HTML), 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	m.log.Info.Printf("Saved HTML to: %s", filePath)
	if len(res.Failures) > 0 {
		m.log.Info.Printf("%d of %d resources could not be mirrored", len(res.Failures), len(res.Failures)+res.Rewritten)
	}

	return filePath, res, nil
}
