package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ArtworkID int64

func (id ArtworkID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseArtworkID(raw string) (ArtworkID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: artwork id %q", ErrInvalidID, raw)
	}

	return ArtworkID(value), nil
}

type Artwork struct {
	ID          ArtworkID
	Name        string
	Description string
	Style       string
	ImageURLs   []string
	IsLiked     bool
	LikeCount   int
	CreatedAt   time.Time
	SyncState
}

var _ Record[ArtworkID, Artwork] = Artwork{}

func (a Artwork) Key() ArtworkID { return a.ID }

func (a Artwork) Kind() Kind { return KindArtworks }

func (a Artwork) State() SyncState { return a.SyncState }

func (a Artwork) WithState(state SyncState) Artwork {
	a.SyncState = state
	return a
}
