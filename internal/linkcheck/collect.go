package linkcheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"runtime"
	"sort"

	"github.com/nao1215/linkcheck/internal/extract"
	"github.com/nao1215/linkcheck/internal/model"
	"github.com/nao1215/linkcheck/internal/site"
	"golang.org/x/sync/errgroup"
)

// Collector runs the collection phase.
type Collector struct {
	extractor   extract.Extractor
	concurrency int
	ignore      []string
	logger      *slog.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithExtractor sets the extractor. The default is extract.HTMLExtractor.
func WithExtractor(e extract.Extractor) CollectorOption {
	return func(c *Collector) {
		if e != nil {
			c.extractor = e
		}
	}
}

// WithConcurrency sets how many pages are extracted at once.
func WithConcurrency(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithIgnorePatterns skips links whose value or path component matches
// any path.Match pattern.
func WithIgnorePatterns(patterns []string) CollectorOption {
	return func(c *Collector) {
		c.ignore = append([]string(nil), patterns...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) {
		c.logger = logger
	}
}

// NewCollector creates a Collector with the given options.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		extractor:   extract.NewHTMLExtractor(),
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Collect extracts every page of tree and returns the Snapshot.
// Any unreadable or unparsable page fails the whole collection.
func (c *Collector) Collect(ctx context.Context, tree *site.Tree) (*Snapshot, error) {
	docs := make([]*extract.Document, len(tree.Pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, page := range tree.Pages {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			doc, err := c.extractFile(tree.File(page))
			if err != nil {
				return fmt.Errorf("read page %s: %w", page, err)
			}
			docs[i] = doc

			c.logger.Debug("extracted page",
				"page", page,
				"links", len(doc.Links),
				"ids", len(doc.IDs),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return c.assemble(tree, docs), nil
}

func (c *Collector) extractFile(name string) (*extract.Document, error) {
	f, err := os.Open(name) //nolint:gosec // Paths come from walking the output root
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return c.extractor.Extract(f)
}

// assemble builds the identifier and link tables. It runs after every
// extraction has finished.
func (c *Collector) assemble(tree *site.Tree, docs []*extract.Document) *Snapshot {
	snap := &Snapshot{
		tree:  tree,
		pages: make(map[string]*model.Page, len(tree.Pages)),
		links: make(map[string][]string),
	}

	for i, pagePath := range tree.Pages {
		page := model.NewPage(pagePath)
		for id := range docs[i].IDs {
			page.AddID(id)
		}
		snap.pages[pagePath] = page

		for _, link := range docs[i].Links {
			if c.ignored(link) {
				c.logger.Debug("ignoring link", "page", pagePath, "link", link)
				continue
			}
			snap.links[link] = append(snap.links[link], pagePath)
		}
	}

	snap.linkOrder = make([]string, 0, len(snap.links))
	for link, refs := range snap.links {
		sort.Strings(refs)
		snap.linkOrder = append(snap.linkOrder, link)
	}
	sort.Strings(snap.linkOrder)

	return snap
}

func (c *Collector) ignored(link string) bool {
	if len(c.ignore) == 0 {
		return false
	}
	linkPath, _, _ := extract.SplitFragment(link)
	for _, pattern := range c.ignore {
		if ok, _ := path.Match(pattern, link); ok {
			return true
		}
		if linkPath == "" {
			continue
		}
		if ok, _ := path.Match(pattern, linkPath); ok {
			return true
		}
	}
	return false
}
