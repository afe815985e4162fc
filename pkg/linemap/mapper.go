// Package linemap maintains the bidirectional mapping between source line
// numbers and rendered vertical positions of a block tree. A scroll-sync
// consumer queries it to translate editor lines into preview offsets and
// back; the renderer signals it after every tree mutation.
//
// The mapper never mutates the tree. Its own indexes are rebuilt wholesale on
// demand: change signals mark the map dirty and arm a debounce timer, queries
// against a dirty map rebuild synchronously before answering. Rebuilds never
// run concurrently; a signal arriving mid-build schedules exactly one
// follow-up build.
package linemap

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdsync/internal/logging"
	"github.com/yaklabco/mdsync/pkg/blocktree"
)

// State is the lifecycle state of the map relative to the current tree.
type State int

const (
	// StateClean means the map reflects the current tree.
	StateClean State = iota

	// StateDirty means the tree changed since the last build.
	StateDirty

	// StateBuilding means a rebuild is in progress.
	StateBuilding
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	default:
		return "building"
	}
}

// errNoContainer reports a rebuild attempted without an attached tree.
var errNoContainer = errors.New("no container attached")

// span is the mapper's snapshot of one tagged block: its line range plus the
// geometry captured at the last rebuild. Spans are held in rendered vertical
// order, which is the authoritative walk order for interpolation queries.
type span struct {
	id     blocktree.ID
	kind   blocktree.Kind
	rng    blocktree.LineRange
	height float64
	offset float64
}

// Mapper owns the line↔position map for one document's rendered tree.
//
// All methods are safe for concurrent use. Query methods never return errors:
// they answer from the map when clean, rebuild inline when dirty, and fall
// back to zero/not-found values when the map is empty or no tree is attached.
type Mapper struct {
	mu   sync.Mutex
	tree *blocktree.Tree
	opts Options
	log  *log.Logger

	// Indexes, valid while state != StateDirty. lineToBlock keeps the first
	// block claiming each line; spans is the authoritative document-order
	// structure.
	lineToBlock map[int]blocktree.ID
	spans       []span
	spanByID    map[blocktree.ID]int

	totalSourceLines  int
	totalMappedHeight float64

	state     State
	pending   bool
	timer     *time.Timer
	destroyed bool

	subs subscribers
}

// New creates a Mapper for the given tree. No map is built until Init or the
// first query. A nil tree is tolerated: the mapper stays inert until a tree
// is attached.
func New(tree *blocktree.Tree, opts Options) *Mapper {
	opts = opts.withDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Mapper{
		tree:        tree,
		opts:        opts,
		log:         logger,
		lineToBlock: make(map[int]blocktree.ID),
		spanByID:    make(map[blocktree.ID]int),
		state:       StateDirty,
		subs:        newSubscribers(),
	}
}

// Init performs the first build. A missing tree is reported through the error
// event rather than returned; the mapper stays inert until Attach supplies
// one.
func (m *Mapper) Init() {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return
	}
	if m.tree == nil {
		m.mu.Unlock()
		m.dispatch([]event{{err: &ErrorEvent{Message: errNoContainer.Error()}}})
		return
	}
	events := m.rebuildLocked()
	m.mu.Unlock()
	m.dispatch(events)
}

// Attach replaces the tree the mapper observes. The existing map is cleared;
// the next build reflects the new tree. Used on document switch together
// with Invalidate semantics.
func (m *Mapper) Attach(tree *blocktree.Tree) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	m.stopTimerLocked()
	m.resetLocked()
	m.tree = tree
	m.state = StateDirty
	m.pending = false
}

// NotifyChanged signals that the tree's structure or line tags changed. The
// map is marked dirty and the debounce timer restarts; when it fires with no
// further signals, one rebuild runs. Signals arriving mid-build are absorbed
// into a single follow-up build.
func (m *Mapper) NotifyChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	if m.state == StateBuilding {
		m.pending = true
		return
	}
	m.state = StateDirty
	m.restartTimerLocked()
}

// Update forces a dirty-and-rebuild cycle immediately, bypassing the
// debounce. Renderers call it after a full render pass.
func (m *Mapper) Update() {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return
	}
	if m.state == StateBuilding {
		m.pending = true
		m.mu.Unlock()
		return
	}
	m.stopTimerLocked()
	m.state = StateDirty
	events := m.rebuildLocked()
	m.mu.Unlock()
	m.dispatch(events)
}

// Rebuild recomputes the map from the current tree. Safe to call at any
// time; a rebuild requested while one is running is coalesced into a single
// follow-up build rather than running concurrently.
func (m *Mapper) Rebuild() {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return
	}
	if m.state == StateBuilding {
		m.pending = true
		m.mu.Unlock()
		return
	}
	m.stopTimerLocked()
	events := m.rebuildLocked()
	m.mu.Unlock()
	m.dispatch(events)
}

// Invalidate clears the map, cancels any pending debounce, and marks the
// mapper dirty. Must be called when the underlying document identity
// changes: entries from the previous document would otherwise answer
// queries with silently wrong positions.
func (m *Mapper) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
	m.resetLocked()
	m.state = StateDirty
	m.pending = false
}

// Destroy invalidates the map and drops all event subscribers. The instance
// must not be reused afterwards.
func (m *Mapper) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
	m.resetLocked()
	m.state = StateDirty
	m.pending = false
	m.destroyed = true
	m.subs.clear()
}

// Tree returns the currently attached tree, or nil.
func (m *Mapper) Tree() *blocktree.Tree {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree
}

// State returns the current lifecycle state.
func (m *Mapper) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OnUpdate registers a callback fired after every successful rebuild.
func (m *Mapper) OnUpdate(fn func(UpdateEvent)) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subs.addUpdate(fn)
}

// OnError registers a callback fired when a rebuild fails.
func (m *Mapper) OnError(fn func(ErrorEvent)) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subs.addError(fn)
}

// Unsubscribe removes a previously registered callback.
func (m *Mapper) Unsubscribe(id Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs.remove(id)
}

// restartTimerLocked arms or re-arms the debounce timer.
func (m *Mapper) restartTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.opts.RebuildDebounce, m.debounceFired)
}

// stopTimerLocked cancels a pending debounce, if any.
func (m *Mapper) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// debounceFired runs when the quiet period elapses with no further signals.
func (m *Mapper) debounceFired() {
	m.mu.Lock()
	if m.destroyed || m.state != StateDirty {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	events := m.rebuildLocked()
	m.mu.Unlock()
	m.dispatch(events)
}

// ensureFreshLocked rebuilds inline when the map is dirty. Queries demand a
// fresh answer now, so this bypasses the debounce; the caller dispatches the
// returned events after unlocking. A missing tree leaves the mapper inert
// without spamming the error event on every query.
func (m *Mapper) ensureFreshLocked() []event {
	if m.destroyed || m.state != StateDirty || m.tree == nil {
		return nil
	}
	m.stopTimerLocked()
	return m.rebuildLocked()
}

// rebuildLocked runs build passes until no pending signal remains, then
// settles state. Caller holds the lock and must dispatch the returned events
// after releasing it.
func (m *Mapper) rebuildLocked() []event {
	var events []event
	m.state = StateBuilding
	for {
		start := time.Now()
		err := m.buildOnceLocked()
		if m.pending {
			// The tree changed while building; one more pass picks it up.
			m.pending = false
			continue
		}
		if err != nil {
			// A failed build never leaves Building set, and the partial map
			// is not rolled back; the next trigger retries.
			m.state = StateDirty
			m.log.Error("map rebuild failed",
				logging.FieldError, err,
				logging.FieldState, m.state,
			)
			events = append(events, event{err: &ErrorEvent{Message: err.Error()}})
			return events
		}
		m.state = StateClean
		elapsed := time.Since(start)
		if m.opts.Debug {
			m.log.Debug("map rebuilt",
				logging.FieldLineCount, m.totalSourceLines,
				logging.FieldBlockCount, len(m.spans),
				logging.FieldBuildTime, elapsed,
				logging.FieldRevision, m.tree.Revision(),
			)
		}
		events = append(events, event{update: &UpdateEvent{
			LineCount:    m.totalSourceLines,
			ElementCount: len(m.spans),
			BuildTime:    elapsed,
		}})
		return events
	}
}

// buildOnceLocked performs one collect+measure pass over the tree. Panics
// from the tree's accessors are converted into build errors so a broken
// render never takes down the consumer.
func (m *Mapper) buildOnceLocked() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("build panic: %v", r)
		}
	}()

	m.resetLocked()

	if m.tree == nil {
		return errNoContainer
	}

	// Collect: record every block carrying a valid line tag. Blocks without
	// one are skipped silently. On line collisions the first block in
	// document order wins.
	for _, b := range m.tree.Blocks() {
		if !b.Tagged || !b.Range.IsValid() {
			continue
		}
		m.spans = append(m.spans, span{
			id:     b.ID,
			kind:   b.Kind,
			rng:    b.Range,
			height: b.Height,
			offset: b.OffsetTop,
		})
		for line := b.Range.Start; line <= b.Range.End; line++ {
			if _, taken := m.lineToBlock[line]; !taken {
				m.lineToBlock[line] = b.ID
			}
		}
		if b.Range.End > m.totalSourceLines {
			m.totalSourceLines = b.Range.End
		}
	}

	// Measure: order spans by actual rendered position, which is not
	// guaranteed to match collection order, and accumulate the mapped
	// extent.
	sort.SliceStable(m.spans, func(i, j int) bool {
		return m.spans[i].offset < m.spans[j].offset
	})
	for i := range m.spans {
		s := &m.spans[i]
		if s.height < 0 {
			return fmt.Errorf("block %d: negative height %g", s.id, s.height)
		}
		m.spanByID[s.id] = i
		if bottom := s.offset + s.height; bottom > m.totalMappedHeight {
			m.totalMappedHeight = bottom
		}
	}

	return nil
}

// resetLocked clears all indexes and counters.
func (m *Mapper) resetLocked() {
	m.lineToBlock = make(map[int]blocktree.ID)
	m.spans = nil
	m.spanByID = make(map[blocktree.ID]int)
	m.totalSourceLines = 0
	m.totalMappedHeight = 0
}

// dispatch invokes subscriber callbacks outside the mapper's lock.
func (m *Mapper) dispatch(events []event) {
	if len(events) == 0 {
		return
	}
	m.mu.Lock()
	updates := m.subs.snapshotUpdate()
	errs := m.subs.snapshotError()
	m.mu.Unlock()

	for _, ev := range events {
		switch {
		case ev.update != nil:
			for _, fn := range updates {
				fn(*ev.update)
			}
		case ev.err != nil:
			for _, fn := range errs {
				fn(*ev.err)
			}
		}
	}
}
