// Package patternmaker is the ingest-and-cluster façade: it routes each
// loaded URL into the right per-shape tree and, once ingest is complete,
// runs the cluster cascade over every accumulated tree.
package patternmaker

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync"

	"github.com/patterncluster/urlpattern/cluster"
	"github.com/patterncluster/urlpattern/config"
	"github.com/patterncluster/urlpattern/piece"
	"github.com/patterncluster/urlpattern/tree"
	"github.com/patterncluster/urlpattern/urlerr"
	"github.com/patterncluster/urlpattern/urlmeta"
	"github.com/patterncluster/urlpattern/urlparse"
)

// parallelProcessingThreshold is the per-tree URL count (the root's Count)
// at or above which a shape's cluster pass is considered worth a dedicated
// worker, the same
// gating idea the teacher's BrainParser applies per log group.
const parallelProcessingThreshold = 64

// Stats accumulates ingest counters, mirroring the original's Counter over
// ALL/VALID/UNIQ/INVALID plus a per-error-kind breakdown.
type Stats struct {
	All     int
	Valid   int
	Uniq    int
	Invalid int
	ByKind  map[string]int
}

func newStats() Stats {
	return Stats{ByKind: make(map[string]int)}
}

func (s *Stats) recordInvalid(err error) {
	s.Invalid++
	kind := urlerr.Kind(err)
	if kind == "" {
		kind = "unknown"
	}
	s.ByKind[kind]++
}

// String renders a one-line summary, matching the original's debug log of
// its stats Counter after a load pass.
func (s Stats) String() string {
	return fmt.Sprintf("ALL=%d VALID=%d UNIQ=%d INVALID=%d %v", s.All, s.Valid, s.Uniq, s.Invalid, s.ByKind)
}

type shapeTree struct {
	meta urlmeta.URLMeta
	tree *tree.Tree
}

// Maker ingests raw URLs into per-shape trees and clusters them on demand.
type Maker struct {
	cfg    config.Config
	log    *slog.Logger
	parser *piece.Parser
	shapes map[string]*shapeTree
	order  []string
	stats  Stats
}

// New returns a Maker configured with cfg, logging ingest warnings to log.
// A nil logger installs one that discards everything, the equivalent of
// the original's NullHandler at log level NOTSET.
func New(cfg config.Config, log *slog.Logger) *Maker {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Maker{
		cfg:    cfg,
		log:    log,
		parser: piece.NewParser(),
		shapes: make(map[string]*shapeTree),
		stats:  newStats(),
	}
}

// Load parses one raw URL, routes it into the tree for its shape
// (creating one if this is the first URL of that shape seen), and inserts
// its pieces. It returns whether this exact piece path was new to its
// tree — the original's UNIQ counter — and updates m.Stats() regardless of
// outcome.
func (m *Maker) Load(rawURL string) (isNew bool, err error) {
	m.stats.All++
	defer func() {
		if err != nil {
			m.stats.recordInvalid(err)
			return
		}
		m.stats.Valid++
		if isNew {
			m.stats.Uniq++
		}
	}()

	meta, segments, err := urlparse.ParseURL(rawURL)
	if err != nil {
		return false, err
	}

	pieces := make([]piece.ParsedPiece, len(segments))
	fuzzyRules := make([]string, len(segments))
	for i, seg := range segments {
		pp, perr := m.parser.Parse(seg)
		if perr != nil {
			return false, urlerr.Wrap(urlerr.ErrInvalidChar, perr.Error())
		}
		pieces[i] = pp
		fuzzyRules[i] = pp.FuzzyRule
	}

	sid := urlparse.Digest(meta, fuzzyRules)
	st, ok := m.shapes[sid]
	if !ok {
		st = &shapeTree{meta: meta, tree: tree.New()}
		m.shapes[sid] = st
		m.order = append(m.order, sid)
	}

	isNew = !pathExists(st.tree, pieces)
	st.tree.AddParsedPieces(pieces, 1)
	return isNew, nil
}

func pathExists(t *tree.Tree, pieces []piece.ParsedPiece) bool {
	node := t.Root
	for _, pp := range pieces {
		child, ok := node.Children[pp.Piece]
		if !ok {
			return false
		}
		node = child
	}
	return true
}

// LoadReader reads one URL per line from r, logging and counting each
// ingest error at WARN rather than stopping the whole run — a single
// malformed line should not abort a batch load.
func (m *Maker) LoadReader(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		if _, err := m.Load(raw); err != nil {
			m.log.Warn("rejected url", "error", err, "url", raw)
		}
	}
}

// Process runs cluster.Cluster over every accumulated tree — independent
// shape trees are clustered concurrently by a bounded worker pool, the
// same work-distribution shape as the teacher's
// processGroupsParallel/getOptimalWorkerCount (adapted from "one worker
// per log group" to "one worker per URL-meta tree") — then yields each
// tree once, in ingest order. A range-over-func iterator is the idiomatic
// replacement for the original's generator-based pattern_maker.process().
func (m *Maker) Process() iter.Seq[*tree.Tree] {
	return func(yield func(*tree.Tree) bool) {
		m.clusterParallel()
		for _, sid := range m.order {
			if !yield(m.shapes[sid].tree) {
				return
			}
		}
	}
}

// clusterParallel runs cluster.Cluster over every shape tree, fanning out
// across a capped worker pool when enough trees are large enough to make
// that worthwhile. Every tree is independent (clustering is per-shape), so
// running them concurrently changes nothing about the result, only the
// wall-clock cost of producing it.
func (m *Maker) clusterParallel() {
	numWorkers := m.optimalWorkerCount()
	if numWorkers <= 1 {
		for _, sid := range m.order {
			st := m.shapes[sid]
			cluster.Cluster(m.cfg.MinClusterNum, st.meta, st.tree)
		}
		return
	}

	work := make(chan *shapeTree, len(m.order))
	for _, sid := range m.order {
		work <- m.shapes[sid]
	}
	close(work)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for st := range work {
				cluster.Cluster(m.cfg.MinClusterNum, st.meta, st.tree)
			}
		}()
	}
	wg.Wait()
}

// optimalWorkerCount caps concurrency at NumCPU, at 8, and at the number of
// shapes large enough to clear parallelProcessingThreshold; fewer than two
// such shapes yields 1, i.e. sequential clustering.
func (m *Maker) optimalWorkerCount() int {
	large := 0
	for _, sid := range m.order {
		if m.shapes[sid].tree.Root.Count >= parallelProcessingThreshold {
			large++
		}
	}
	return piece.DetectRuntime().WorkerCount(large, 8)
}

// Stats returns the accumulated ingest counters.
func (m *Maker) Stats() Stats {
	return m.stats
}
