package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
}

// recordingStore captures every Remote Store call in order.
type recordingStore struct {
	remote []item
	calls  []string

	loadErr   error
	deleteErr map[string]error
	writeErr  error
}

func newRecordingStore(remote ...item) *recordingStore {
	return &recordingStore{remote: remote, deleteErr: make(map[string]error)}
}

func (s *recordingStore) Load(ctx context.Context) ([]item, error) {
	s.calls = append(s.calls, "load")
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]item, len(s.remote))
	copy(out, s.remote)
	return out, nil
}

func (s *recordingStore) Delete(ctx context.Context, id string) error {
	s.calls = append(s.calls, "delete:"+id)
	if err := s.deleteErr[id]; err != nil {
		return err
	}
	kept := s.remote[:0]
	for _, it := range s.remote {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.remote = kept
	return nil
}

func (s *recordingStore) Write(ctx context.Context, draft, committed []item) error {
	s.calls = append(s.calls, "write")
	if s.writeErr != nil {
		return s.writeErr
	}
	s.remote = make([]item, len(draft))
	copy(s.remote, draft)
	return nil
}

func identify(it item) string { return it.ID }

func newTestManager(store *recordingStore, policy FailurePolicy) *Manager[item, string] {
	return NewManager("test", store, identify, policy)
}

func TestManagerDirtyFlag(t *testing.T) {
	store := newRecordingStore(item{ID: "a"}, item{ID: "b"})
	m := newTestManager(store, PreserveDraft)

	require.NoError(t, m.Load(context.Background()))
	assert.False(t, m.Dirty(), "freshly loaded manager must be clean")

	m.Apply(func(draft []item) []item {
		draft[0].Name = "renamed"
		return draft
	})
	assert.True(t, m.Dirty(), "local mutation must mark the manager dirty")

	require.NoError(t, m.Commit(context.Background()))
	assert.False(t, m.Dirty(), "successful commit must reset the dirty flag")
}

func TestManagerCleanCommitIsNoOp(t *testing.T) {
	store := newRecordingStore(item{ID: "a"})
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))
	store.calls = nil

	require.NoError(t, m.Commit(context.Background()))
	assert.Empty(t, store.calls, "clean commit must not touch the Remote Store")
}

func TestManagerCommitDeletesBeforeWrite(t *testing.T) {
	store := newRecordingStore(item{ID: "a"}, item{ID: "b"}, item{ID: "c"})
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))

	m.MarkForDeletion("a")
	m.MarkForDeletion("c")
	store.calls = nil

	require.NoError(t, m.Commit(context.Background()))
	require.GreaterOrEqual(t, len(store.calls), 3)
	assert.Equal(t, []string{"delete:a", "delete:c", "write"}, store.calls[:3],
		"deletions must run in marked order, strictly before the write")
}

func TestManagerCommitStopsAfterFailedDelete(t *testing.T) {
	store := newRecordingStore(item{ID: "a"}, item{ID: "b"})
	store.deleteErr["a"] = errors.New("boom")
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))

	m.MarkForDeletion("a")
	m.MarkForDeletion("b")
	store.calls = nil

	err := m.Commit(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"delete:a"}, store.calls,
		"no further calls after the first failure")
	assert.True(t, m.Dirty(), "PreserveDraft keeps the draft dirty for retry")
	assert.Equal(t, []string{"a", "b"}, m.PendingDeletions())
}

func TestManagerReloadOnFailure(t *testing.T) {
	store := newRecordingStore(item{ID: "a", Name: "server"}, item{ID: "b"})
	store.writeErr = errors.New("write failed")
	m := newTestManager(store, ReloadOnFailure)
	require.NoError(t, m.Load(context.Background()))

	m.Apply(func(draft []item) []item {
		draft[0].Name = "local"
		return draft
	})

	err := m.Commit(context.Background())
	require.Error(t, err)
	assert.False(t, m.Dirty(), "ReloadOnFailure discards the draft")
	assert.Empty(t, m.PendingDeletions())

	draft := m.Draft()
	require.Len(t, draft, 2)
	assert.Equal(t, "server", draft[0].Name, "draft must be reset to canonical state")
}

func TestManagerLoadDoesNotClobberDirtyDraft(t *testing.T) {
	store := newRecordingStore(item{ID: "a", Name: "v1"})
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))

	m.Apply(func(draft []item) []item {
		draft[0].Name = "edited"
		return draft
	})

	store.remote = []item{{ID: "a", Name: "v2"}}
	require.NoError(t, m.Load(context.Background()))

	assert.Equal(t, "edited", m.Draft()[0].Name, "refresh must not overwrite unsaved edits")
	assert.Equal(t, "v2", m.Committed()[0].Name, "committed snapshot still refreshes")
	assert.True(t, m.Dirty())
}

func TestManagerLoadRefreshesCleanDraft(t *testing.T) {
	store := newRecordingStore(item{ID: "a", Name: "v1"})
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))

	store.remote = []item{{ID: "a", Name: "v2"}}
	require.NoError(t, m.Load(context.Background()))

	assert.Equal(t, "v2", m.Draft()[0].Name)
}

func TestManagerReorder(t *testing.T) {
	store := newRecordingStore(item{ID: "a"}, item{ID: "b"}, item{ID: "c"})
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))

	m.Reorder([]string{"c", "missing", "a", "a"})

	ids := draftIDs(m)
	assert.Equal(t, []string{"c", "a", "b"}, ids,
		"unknown and duplicate ids are skipped, unlisted items keep relative order at the end")
	assert.True(t, m.Dirty())
}

func TestManagerDeleteThenReorderScenario(t *testing.T) {
	store := newRecordingStore(item{ID: "a"}, item{ID: "b"})
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))

	m.MarkForDeletion("a")
	m.Reorder([]string{"b"})
	store.calls = nil

	require.NoError(t, m.Commit(context.Background()))

	require.GreaterOrEqual(t, len(store.calls), 2)
	assert.Equal(t, "delete:a", store.calls[0])
	assert.Equal(t, "write", store.calls[1])
	assert.Equal(t, []item{{ID: "b"}}, store.remote)
	assert.False(t, m.Dirty())
	assert.Empty(t, m.PendingDeletions())
}

func TestManagerLastWriteWins(t *testing.T) {
	store := newRecordingStore(item{ID: "a", Name: "v0"})
	first := newTestManager(store, PreserveDraft)
	second := newTestManager(store, PreserveDraft)
	require.NoError(t, first.Load(context.Background()))
	require.NoError(t, second.Load(context.Background()))

	first.Apply(func(draft []item) []item {
		draft[0].Name = "from-first"
		return draft
	})
	second.Apply(func(draft []item) []item {
		draft[0].Name = "from-second"
		return draft
	})

	require.NoError(t, first.Commit(context.Background()))
	require.NoError(t, second.Commit(context.Background()))

	assert.Equal(t, "from-second", store.remote[0].Name,
		"the later commit silently overwrites the earlier one")

	require.NoError(t, first.Load(context.Background()))
	assert.Equal(t, "from-second", first.Draft()[0].Name,
		"the first session only sees the overwrite on its next refresh")
}

func TestManagersShareNoState(t *testing.T) {
	store := newRecordingStore(item{ID: "a", Name: "v0"}, item{ID: "b", Name: "v0"})
	one := newTestManager(store, PreserveDraft)
	other := newTestManager(store, PreserveDraft)
	require.NoError(t, one.Load(context.Background()))
	require.NoError(t, other.Load(context.Background()))

	one.MarkForDeletion("a")
	one.Apply(func(draft []item) []item {
		draft[0].Name = "edited"
		return draft
	})

	assert.False(t, other.Dirty(), "edits in one manager must not dirty another")
	assert.Empty(t, other.PendingDeletions())
	assert.Equal(t, []string{"a", "b"}, draftIDs(other))
	assert.Equal(t, "v0", other.Draft()[0].Name)
}

func TestManagerMarkForDeletionDeduplicates(t *testing.T) {
	store := newRecordingStore(item{ID: "a"}, item{ID: "b"})
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))

	m.MarkForDeletion("a")
	m.MarkForDeletion("a")

	assert.Equal(t, []string{"a"}, m.PendingDeletions())
	assert.Equal(t, []string{"b"}, draftIDs(m))
}

func TestManagerDiscard(t *testing.T) {
	store := newRecordingStore(item{ID: "a"}, item{ID: "b"})
	m := newTestManager(store, PreserveDraft)
	require.NoError(t, m.Load(context.Background()))

	m.MarkForDeletion("a")
	m.Apply(func(draft []item) []item { return draft[:0] })
	m.Discard()

	assert.False(t, m.Dirty())
	assert.Empty(t, m.PendingDeletions())
	assert.Equal(t, []string{"a", "b"}, draftIDs(m))
}

func draftIDs(m *Manager[item, string]) []string {
	var ids []string
	for _, it := range m.Draft() {
		ids = append(ids, it.ID)
	}
	return ids
}
