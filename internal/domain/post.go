package domain

import (
	"errors"
	"time"
)

var ErrHashtagNotFound = errors.New("hashtag not found")

type Post struct {
	ID        string
	UserID    string
	Content   string
	Img       *string
	CreatedAt time.Time
}

type Hashtag struct {
	ID    string
	Title string
}
