// Package draft implements the local-draft/commit workflow behind the admin
// editing surfaces: a working copy of a remote entity list is mutated in
// memory, tracked by a dirty flag, and reconciled into ordered Remote Store
// calls only on an explicit save.
package draft

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store is the Remote Store surface a manager commits against. Write issues
// whatever call or calls persist the remaining draft: a single reorder for
// projects, a single batch replace for hero configs, one PUT per changed
// slug for service categories. It receives the committed snapshot alongside
// the draft so implementations can skip unchanged entities.
type Store[T any, ID comparable] interface {
	Load(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id ID) error
	Write(ctx context.Context, draft, committed []T) error
}

// FailurePolicy decides what happens to the draft when a commit fails
// partway through.
type FailurePolicy int

const (
	// PreserveDraft keeps the draft and the dirty flag untouched so the
	// user can retry without re-entering anything.
	PreserveDraft FailurePolicy = iota
	// ReloadOnFailure discards the draft and force-reloads canonical
	// state. Only the project-reorder surface uses this.
	ReloadOnFailure
)

// Manager holds an uncommitted working copy of a remote entity list.
//
// A manager belongs to a single editing surface and is not safe for
// concurrent use; independent surfaces each get their own instance and
// share nothing.
type Manager[T any, ID comparable] struct {
	store    Store[T, ID]
	identify func(T) ID
	policy   FailurePolicy
	logger   zerolog.Logger

	committed        []T
	draft            []T
	pendingDeletions []ID
	pendingSet       map[ID]bool
	dirty            bool
}

func NewManager[T any, ID comparable](name string, store Store[T, ID], identify func(T) ID, policy FailurePolicy) *Manager[T, ID] {
	return &Manager[T, ID]{
		store:      store,
		identify:   identify,
		policy:     policy,
		logger:     log.With().Str("draftManager", name).Logger(),
		pendingSet: make(map[ID]bool),
	}
}

// Load refreshes the committed snapshot from the Remote Store. The draft is
// overwritten only when no local edits are pending: a background refresh
// must never clobber unsaved work.
func (m *Manager[T, ID]) Load(ctx context.Context) error {
	items, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	m.committed = cloneSlice(items)
	if !m.dirty {
		m.draft = cloneSlice(items)
	}
	return nil
}

// Apply runs a local mutation against the draft and marks it dirty. No
// Remote Store call happens here.
func (m *Manager[T, ID]) Apply(mutate func(draft []T) []T) {
	m.draft = mutate(cloneSlice(m.draft))
	m.dirty = true
}

// MarkForDeletion removes the entity from the draft's visible list and
// records the id for the delete phase of the next commit.
func (m *Manager[T, ID]) MarkForDeletion(id ID) {
	if m.pendingSet[id] {
		return
	}
	m.pendingSet[id] = true
	m.pendingDeletions = append(m.pendingDeletions, id)

	kept := make([]T, 0, len(m.draft))
	for _, item := range m.draft {
		if m.identify(item) != id {
			kept = append(kept, item)
		}
	}
	m.draft = kept
	m.dirty = true
}

// Reorder replaces the draft's ordering from an id list. Ids that no longer
// resolve to a draft entity are skipped; draft entities missing from the
// list keep their relative order after the listed ones.
func (m *Manager[T, ID]) Reorder(order []ID) {
	byID := make(map[ID]T, len(m.draft))
	for _, item := range m.draft {
		byID[m.identify(item)] = item
	}

	reordered := make([]T, 0, len(m.draft))
	placed := make(map[ID]bool, len(order))
	for _, id := range order {
		item, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		reordered = append(reordered, item)
	}
	for _, item := range m.draft {
		if !placed[m.identify(item)] {
			reordered = append(reordered, item)
		}
	}

	m.draft = reordered
	m.dirty = true
}

// Commit reconciles the draft into Remote Store calls: one delete per
// pending deletion, issued and awaited strictly before the write call(s)
// for the remaining draft. A clean manager commits nothing. On success the
// pending state is cleared and canonical state is re-fetched to pick up
// server-side derived fields. On failure no further calls are made and the
// draft survives for retry, unless the manager's policy is ReloadOnFailure.
func (m *Manager[T, ID]) Commit(ctx context.Context) error {
	if !m.dirty {
		return nil
	}

	for _, id := range m.pendingDeletions {
		if err := m.store.Delete(ctx, id); err != nil {
			return m.fail(ctx, err)
		}
	}

	if err := m.store.Write(ctx, cloneSlice(m.draft), cloneSlice(m.committed)); err != nil {
		return m.fail(ctx, err)
	}

	m.clearPending()
	m.dirty = false
	return m.Load(ctx)
}

// Discard throws away all local edits and resets the draft to the last
// committed snapshot.
func (m *Manager[T, ID]) Discard() {
	m.draft = cloneSlice(m.committed)
	m.clearPending()
	m.dirty = false
}

// Dirty reports whether unsaved local edits exist.
func (m *Manager[T, ID]) Dirty() bool {
	return m.dirty
}

// Draft returns a copy of the working list.
func (m *Manager[T, ID]) Draft() []T {
	return cloneSlice(m.draft)
}

// Committed returns a copy of the last-known-good list.
func (m *Manager[T, ID]) Committed() []T {
	return cloneSlice(m.committed)
}

// PendingDeletions returns the ids queued for the next commit's delete
// phase, in the order they were marked.
func (m *Manager[T, ID]) PendingDeletions() []ID {
	out := make([]ID, len(m.pendingDeletions))
	copy(out, m.pendingDeletions)
	return out
}

func (m *Manager[T, ID]) fail(ctx context.Context, err error) error {
	if m.policy == ReloadOnFailure {
		m.clearPending()
		m.dirty = false
		if loadErr := m.Load(ctx); loadErr != nil {
			m.logger.Error().Err(loadErr).Msg("Reload after failed commit also failed")
		}
	}
	return err
}

func (m *Manager[T, ID]) clearPending() {
	m.pendingDeletions = nil
	m.pendingSet = make(map[ID]bool)
}

func cloneSlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
