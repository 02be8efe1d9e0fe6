// Package thread orders a post's comments for display: every main comment is followed by its own
// replies, and each tier is chronological.
package thread

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"study-team-api/internal/domain"
)

// ErrMalformedTimestamp is returned when a comment has no creation time
var ErrMalformedTimestamp = errors.New("comment has a zero created_at")

// Organize returns a new slice holding the main comments in ascending CreatedAt order, each one
// immediately followed by its replies in ascending CreatedAt order. Equal timestamps keep their
// input order. Replies whose parent is not among the main comments are dropped.
//
// The input slice is never modified. If ordering fails, Organize returns a copy of the input in
// its original order together with the error, so the result is always safe to render.
func Organize(comments []domain.Comment) (ordered []domain.Comment, err error) {
	defer func() {
		if r := recover(); r != nil {
			ordered = passthrough(comments)
			err = fmt.Errorf("organize comments: %v", r)
		}
	}()

	ordered, err = organize(comments)
	if err != nil {
		return passthrough(comments), err
	}
	return ordered, nil
}

func organize(comments []domain.Comment) ([]domain.Comment, error) {
	mains := make([]domain.Comment, 0, len(comments))
	replies := make([]domain.Comment, 0)

	for i := range comments {
		if comments[i].CreatedAt.IsZero() {
			return nil, fmt.Errorf("comment %s: %w", comments[i].ID, ErrMalformedTimestamp)
		}
		if comments[i].IsReply {
			replies = append(replies, comments[i])
		} else {
			mains = append(mains, comments[i])
		}
	}

	sortByCreatedAt(mains)
	sortByCreatedAt(replies)

	children := make(map[uuid.UUID][]domain.Comment, len(mains))
	for _, r := range replies {
		if r.ParentCommentID == nil {
			continue
		}
		children[*r.ParentCommentID] = append(children[*r.ParentCommentID], r)
	}

	result := make([]domain.Comment, 0, len(comments))
	for _, m := range mains {
		result = append(result, m)
		result = append(result, children[m.ID]...)
	}
	return result, nil
}

func sortByCreatedAt(cs []domain.Comment) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].CreatedAt.Before(cs[j].CreatedAt)
	})
}

func passthrough(comments []domain.Comment) []domain.Comment {
	out := make([]domain.Comment, len(comments))
	copy(out, comments)
	return out
}
