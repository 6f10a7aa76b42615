package domain

import "time"

type Kind string

const (
	KindDesigns  Kind = "designs"
	KindArtworks Kind = "artworks"
	KindPosts    Kind = "posts"
)

func (k Kind) Valid() bool {
	switch k {
	case KindDesigns, KindArtworks, KindPosts:
		return true
	default:
		return false
	}
}

// Key is the identifier of a record within its collection.
type Key interface {
	comparable
	String() string
}

// SyncState is the cache metadata carried by every record.
type SyncState struct {
	// LastSynced is zero when the record was never reconciled with the remote source.
	LastSynced time.Time
	NeedsSync  bool
	IsFavorite bool
}

type Record[K Key, R any] interface {
	Key() K
	Kind() Kind
	State() SyncState
	WithState(state SyncState) R
}

// MarkSynced records a confirmed remote write. LastSynced never moves backwards.
func MarkSynced[K Key, R Record[K, R]](record R, at time.Time) R {
	state := record.State()
	state.NeedsSync = false
	if at.After(state.LastSynced) {
		state.LastSynced = at
	}

	return record.WithState(state)
}

// MarkDirty flags a local mutation that still has to be pushed.
func MarkDirty[K Key, R Record[K, R]](record R) R {
	state := record.State()
	state.NeedsSync = true

	return record.WithState(state)
}

func ToggleFavorite[K Key, R Record[K, R]](record R, favorite bool) R {
	state := record.State()
	state.IsFavorite = favorite
	state.NeedsSync = true

	return record.WithState(state)
}

func IsPending[K Key, R Record[K, R]](record R) bool {
	return record.State().NeedsSync
}

// CarryLastSynced keeps the later of the stored and incoming LastSynced values.
func CarryLastSynced[K Key, R Record[K, R]](incoming R, stored R) R {
	state := incoming.State()
	previous := stored.State().LastSynced
	if !previous.After(state.LastSynced) {
		return incoming
	}

	state.LastSynced = previous
	return incoming.WithState(state)
}
