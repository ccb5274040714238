package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrIncompleteReview = errors.New("please fill out all fields to submit your review")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrReviewTooLong    = errors.New("review is too long")
)

const (
	MinRating = 1
	MaxRating = 5

	MaxReviewNameLen    = 80
	MaxReviewCommentLen = 2000

	avatarURLPattern = "https://picsum.photos/seed/%s/100/100"
)

// Review is public feedback about the app. Every field is required.
type Review struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewReview(userID, name string, rating int, comment string, now time.Time) (*Review, error) {
	name = strings.TrimSpace(name)
	comment = strings.TrimSpace(comment)

	if name == "" || comment == "" || rating == 0 {
		return nil, ErrIncompleteReview
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(name) > MaxReviewNameLen || utf8.RuneCountInString(comment) > MaxReviewCommentLen {
		return nil, ErrReviewTooLong
	}

	return &Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Rating:    rating,
		Comment:   comment,
		AvatarURL: fmt.Sprintf(avatarURLPattern, url.PathEscape(name)),
		CreatedAt: now.UTC(),
	}, nil
}
