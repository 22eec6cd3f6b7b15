package mirror

import (
	"net/url"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/net/html"
)

// ResourceKind tells which local folder a resource belongs to
type ResourceKind int

const (
	KindImage ResourceKind = iota
	KindStylesheet
)

// Dir returns the top-level folder name for the kind
func (k ResourceKind) Dir() string {
	if k == KindStylesheet {
		return "styles"
	}
	return "images"
}

func (k ResourceKind) String() string {
	if k == KindStylesheet {
		return "stylesheet"
	}
	return "image"
}

// ResourceReference is an image or stylesheet reference found in a document
type ResourceReference struct {
	Kind     ResourceKind
	Original string   // attribute value as written in the document
	Resolved *url.URL // nil when Original could not be resolved
	Err      error    // resolve error, if any

	node *html.Node
	attr string
}

// Rewrite replaces one attribute value in the parsed document
type Rewrite struct {
	node  *html.Node
	attr  string
	Value string
}

// ResourceFailure records a resource that could not be mirrored
type ResourceFailure struct {
	Ref ResourceReference
	Err error
}

// Result is the outcome of one mirroring pass
type Result struct {
	HTML      string
	Rewritten int
	Skipped   int
	Failures  []ResourceFailure
}

// Layout maps a destination folder and subfolder to resource directories:
// <base>/images/<sub> and <base>/styles/<sub>.
type Layout struct {
	Base      string
	Subfolder string
}

// NewLayout creates the layout for a (baseFolder, subfolder) pair
func NewLayout(baseFolder, subfolder string) Layout {
	return Layout{Base: baseFolder, Subfolder: subfolder}
}

// Dir returns the directory where resources of kind k are written
func (l Layout) Dir(k ResourceKind) string {
	return filepath.Join(l.Base, k.Dir(), l.Subfolder)
}

func (l Layout) ImageDir() string { return l.Dir(KindImage) }
func (l Layout) StyleDir() string { return l.Dir(KindStylesheet) }

// LocalRef returns the document-relative reference for a saved resource.
// It always uses forward slashes.
func (l Layout) LocalRef(k ResourceKind, fileName string) string {
	return path.Join(k.Dir(), l.Subfolder, fileName)
}

// Ensure creates both resource directories if they don't exist
func (l Layout) Ensure() error {
	for _, dir := range []string{l.ImageDir(), l.StyleDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
