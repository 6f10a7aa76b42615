package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PostID string

func (id PostID) String() string { return string(id) }

func ParsePostID(raw string) (PostID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: post id is empty", ErrInvalidID)
	}

	return PostID(trimmed), nil
}

// NewPostID mints an id for a post written while offline.
func NewPostID() PostID {
	return PostID(uuid.NewString())
}

type Post struct {
	ID         PostID
	Title      string
	Content    string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
	SyncState
}

var _ Record[PostID, Post] = Post{}

func (p Post) Key() PostID { return p.ID }

func (p Post) Kind() Kind { return KindPosts }

func (p Post) State() SyncState { return p.SyncState }

func (p Post) WithState(state SyncState) Post {
	p.SyncState = state
	return p
}
