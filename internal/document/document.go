package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ltpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	rpdf "rsc.io/pdf"
)

// Kind distinguishes page-oriented binary documents from plain text.
type Kind int

const (
	KindPDF Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindText {
		return "text"
	}
	return "pdf"
}

// OutlineEntry is one flattened bookmark: title, 1-based target page, depth
// starting at 1 for top-level entries.
type OutlineEntry struct {
	Title string
	Page  int
	Depth int
}

// Document is an opened input source. PDF readers are created lazily and
// cached; Close releases them.
type Document struct {
	Path  string
	Kind  Kind
	Pages int

	mu     sync.Mutex
	file   *os.File
	reader *ltpdf.Reader
	text   string // plain-text contents, loaded lazily
	loaded bool
}

// Open stats and classifies the input file and determines its page count.
// A missing file is a pre-flight error.
func Open(path string) (*Document, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot access input file: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("input path is a directory: %s", path)
	}

	d := &Document{Path: path, Kind: KindText, Pages: 1}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		d.Kind = KindPDF
		n, err := pageCount(path, fi.Size())
		if err != nil {
			return nil, err
		}
		d.Pages = n
	}
	return d, nil
}

// pageCount asks pdfcpu first and falls back to an rsc.io/pdf reader, which
// tolerates some files pdfcpu rejects.
func pageCount(path string, size int64) (int, error) {
	if n, err := api.PageCountFile(path); err == nil && n > 0 {
		return n, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	r, err := rpdf.NewReader(f, size)
	if err != nil {
		return 0, fmt.Errorf("cannot read PDF %s: %w", path, err)
	}
	n := r.NumPage()
	if n <= 0 {
		return 0, fmt.Errorf("PDF %s reports no pages", path)
	}
	return n, nil
}

// Outline returns the flattened bookmark hierarchy. Plain-text documents
// have no outline.
func (d *Document) Outline() ([]OutlineEntry, error) {
	if d.Kind != KindPDF {
		return nil, nil
	}
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	bms, err := api.Bookmarks(f, nil)
	if err != nil {
		// pdfcpu errors on files without an outline tree; treat as no outline
		// and let the caller decide whether that is fatal for its mode.
		return nil, nil
	}
	var out []OutlineEntry
	flattenBookmarks(bms, 1, &out)
	return out, nil
}

func flattenBookmarks(bms []pdfcpu.Bookmark, depth int, out *[]OutlineEntry) {
	for _, b := range bms {
		*out = append(*out, OutlineEntry{Title: strings.TrimSpace(b.Title), Page: b.PageFrom, Depth: depth})
		if len(b.Kids) > 0 {
			flattenBookmarks(b.Kids, depth+1, out)
		}
	}
}

// PageText returns the text of the given 1-based page. Pages with no
// extractable content yield an empty string, not an error.
func (d *Document) PageText(page int) (string, error) {
	if d.Kind == KindText {
		if err := d.loadText(); err != nil {
			return "", err
		}
		return d.text, nil
	}
	r, err := d.pdfReader()
	if err != nil {
		return "", err
	}
	if page < 1 || page > r.NumPage() {
		return "", fmt.Errorf("page %d out of range 1-%d", page, r.NumPage())
	}
	p := r.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	txt, err := p.GetPlainText(nil)
	if err != nil {
		// Extraction failures on individual pages degrade to empty text so a
		// single bad page cannot sink the whole segment.
		return "", nil
	}
	return txt, nil
}

// PageCount reports the number of pages (1 for plain text).
func (d *Document) PageCount() int { return d.Pages }

func (d *Document) pdfReader() (*ltpdf.Reader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.reader != nil {
		return d.reader, nil
	}
	f, r, err := ltpdf.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open PDF for extraction: %w", err)
	}
	d.file = f
	d.reader = r
	return r, nil
}

func (d *Document) loadText() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return nil
	}
	b, err := os.ReadFile(d.Path)
	if err != nil {
		return err
	}
	d.text = string(b)
	d.loaded = true
	return nil
}

// Close releases the cached PDF reader, if any.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reader = nil
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}
