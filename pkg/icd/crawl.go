package icd

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/polynav/polynav/pkg/errors"
	"github.com/polynav/polynav/pkg/foundation"
)

// DefaultCrawlConcurrency bounds in-flight requests during a crawl. The
// local Docker server saturates around 50; the official API rate-limits
// well before that, so stay modest by default.
const DefaultCrawlConcurrency = 16

// Crawler walks the entire Foundation hierarchy breadth-first, starting at
// the root, and materializes it as a dataset with hierarchy statistics.
type Crawler struct {
	Client      *Client
	Concurrency int // falls back to DefaultCrawlConcurrency when <= 0
	Logger      *log.Logger
}

// Crawl fetches every entity reachable from the root. Entities that return
// 404 are recorded as placeholders so their edges stay intact; any other
// error aborts the crawl.
func (cr *Crawler) Crawl(ctx context.Context) (foundation.Dataset, error) {
	concurrency := cr.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultCrawlConcurrency
	}
	logger := cr.Logger
	if logger == nil {
		logger = log.Default()
	}

	ds := foundation.Dataset{}
	seen := map[string]bool{"root": true}
	frontier := []string{"root"}
	fetched := 0
	start := time.Now()

	for len(frontier) > 0 {
		results := make([]*Entity, len(frontier))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, id := range frontier {
			g.Go(func() error {
				e, err := cr.Client.Entity(gctx, id)
				if err != nil {
					if errors.Is(err, errors.ErrCodeEntityNotFound) {
						logger.Warn("entity missing upstream", "id", id)
						return nil
					}
					return err
				}
				results[i] = e
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []string
		for i, id := range frontier {
			fetched++
			e := results[i]
			if e == nil {
				ds[id] = foundation.NodeRecord{Title: "?"}
				continue
			}

			rec := foundation.NodeRecord{
				Title:    e.Title.Value,
				Parents:  extractIDs(e.Parent),
				Children: extractIDs(e.Child),
			}
			ds[id] = rec

			for _, cid := range rec.Children {
				if !seen[cid] {
					seen[cid] = true
					next = append(next, cid)
				}
			}
		}

		logger.Info("crawl progress",
			"fetched", fetched,
			"queued", len(next),
			"elapsed", time.Since(start).Round(time.Second))
		frontier = next
	}

	ComputeStats(ds)
	logger.Info("crawl complete", "entities", len(ds), "elapsed", time.Since(start).Round(time.Second))
	return ds, nil
}

// ComputeStats fills in the derived hierarchy statistics for every record:
// DescendantCount (unique descendants, no double counting through shared
// subtrees), Height (longest downward path to a leaf), Depth (shortest
// path from the root), and MaxDepth (longest path from the root).
// Edges to ids absent from the dataset are ignored. Cycles terminate at
// zero rather than recursing forever.
func ComputeStats(ds foundation.Dataset) {
	descCache := make(map[string]map[string]struct{}, len(ds))
	var descendants func(id string) map[string]struct{}
	descendants = func(id string) map[string]struct{} {
		if s, ok := descCache[id]; ok {
			return s
		}
		descCache[id] = map[string]struct{}{} // cycle guard
		result := make(map[string]struct{})
		for _, c := range ds[id].Children {
			if _, ok := ds[c]; !ok {
				continue
			}
			result[c] = struct{}{}
			for d := range descendants(c) {
				result[d] = struct{}{}
			}
		}
		descCache[id] = result
		return result
	}

	heightCache := make(map[string]int, len(ds))
	var height func(id string) int
	height = func(id string) int {
		if h, ok := heightCache[id]; ok {
			return h
		}
		heightCache[id] = 0 // cycle guard
		best := -1
		for _, c := range ds[id].Children {
			if _, ok := ds[c]; !ok {
				continue
			}
			if h := height(c); h > best {
				best = h
			}
		}
		heightCache[id] = best + 1
		return best + 1
	}

	maxDepthCache := make(map[string]int, len(ds))
	var maxDepth func(id string) int
	maxDepth = func(id string) int {
		if d, ok := maxDepthCache[id]; ok {
			return d
		}
		maxDepthCache[id] = 0 // cycle guard
		best := -1
		for _, p := range ds[id].Parents {
			if _, ok := ds[p]; !ok {
				continue
			}
			if d := maxDepth(p); d > best {
				best = d
			}
		}
		maxDepthCache[id] = best + 1
		return best + 1
	}

	depths := shortestDepths(ds)

	for id := range ds {
		rec := ds[id]
		rec.DescendantCount = len(descendants(id))
		rec.Height = height(id)
		rec.Depth = depths[id]
		rec.MaxDepth = maxDepth(id)
		ds[id] = rec
	}
}

// shortestDepths runs a multi-source BFS from every node with no in-graph
// parent and returns the shortest root distance per id. Nodes unreachable
// from any root keep depth zero.
func shortestDepths(ds foundation.Dataset) map[string]int {
	depths := make(map[string]int, len(ds))
	var queue []string
	for id, rec := range ds {
		isRoot := true
		for _, p := range rec.Parents {
			if _, ok := ds[p]; ok {
				isRoot = false
				break
			}
		}
		if isRoot {
			depths[id] = 0
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range ds[id].Children {
			if _, ok := ds[c]; !ok {
				continue
			}
			if _, visited := depths[c]; visited {
				continue
			}
			depths[c] = depths[id] + 1
			queue = append(queue, c)
		}
	}
	return depths
}
