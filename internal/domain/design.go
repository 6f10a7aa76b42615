package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type DesignID int64

func (id DesignID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseDesignID(raw string) (DesignID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: design id %q", ErrInvalidID, raw)
	}

	return DesignID(value), nil
}

type Design struct {
	ID          DesignID
	Name        string
	Description string
	Style       string
	ImageURLs   []string
	IsLiked     bool
	LikeCount   int
	CreatedAt   time.Time
	SyncState
}

var _ Record[DesignID, Design] = Design{}

func (d Design) Key() DesignID { return d.ID }

func (d Design) Kind() Kind { return KindDesigns }

func (d Design) State() SyncState { return d.SyncState }

func (d Design) WithState(state SyncState) Design {
	d.SyncState = state
	return d
}
