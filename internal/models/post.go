package models

import "time"

// Post is a social post published to a whole kindergarten or to a single
// class. ClassID = 0 means the post is kindergarten-wide.
type Post struct {
	ID             int64
	KindergartenID int64
	ClassID        int64
	Title          string
	Description    string
	Images         string
	CreatedAt      time.Time
	LikeCount      int
	LikedByCaller  bool
}

// Comment is a reply to a post
type Comment struct {
	ID            int64
	PostID        int64
	UserID        int64
	AuthorName    string
	Content       string
	CreatedAt     time.Time
	LikeCount     int
	LikedByCaller bool
}
