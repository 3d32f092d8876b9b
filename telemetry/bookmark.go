package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSaturation    BookmarkType = "saturation"
	BookmarkCollapseStorm BookmarkType = "collapse_storm"
	BookmarkClusterCap    BookmarkType = "cluster_cap"
	BookmarkQuiet         BookmarkType = "quiet"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// quietWindows is how many idle windows in a row trigger a quiet bookmark.
const quietWindows = 3

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	maxClusters int

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	prevEvicted  int
	prevClusters int
	quietCount   int
}

// NewBookmarkDetector creates a detector with the given history size.
// maxClusters is the cluster cap used for cap detection.
func NewBookmarkDetector(historySize, maxClusters int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		maxClusters: maxClusters,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Saturation: population cap started evicting after a window without evictions
	if stats.Evicted > 0 && bd.prevEvicted == 0 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkSaturation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population cap reached, %d particles evicted", stats.Evicted),
		})
	}

	if b := bd.checkCollapseStorm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Cluster cap: every cluster slot in use for the first time since it was last below cap
	if bd.maxClusters > 0 && stats.Clusters >= bd.maxClusters && bd.prevClusters < bd.maxClusters {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkClusterCap,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("All %d cluster slots in use", bd.maxClusters),
		})
	}

	if b := bd.checkQuiet(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	bd.prevEvicted = stats.Evicted
	bd.prevClusters = stats.Clusters

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkCollapseStorm fires when collapses exceed twice the rolling average.
func (bd *BookmarkDetector) checkCollapseStorm(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Collapses()
	}
	avg := float64(total) / float64(len(history))

	n := stats.Collapses()
	if n >= 3 && float64(n) > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkCollapseStorm,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d collapses vs %.1f average", n, avg),
		}
	}
	return nil
}

// checkQuiet fires once after several windows with no particles and no input.
func (bd *BookmarkDetector) checkQuiet(stats WindowStats) *Bookmark {
	idle := stats.Bursts == 0 && stats.FreeParticles == 0 && stats.Clusters == 0
	if !idle {
		bd.quietCount = 0
		return nil
	}
	bd.quietCount++
	if bd.quietCount == quietWindows {
		return &Bookmark{
			Type:        BookmarkQuiet,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Scene empty for %d windows", quietWindows),
		}
	}
	return nil
}
