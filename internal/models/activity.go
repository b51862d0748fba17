package models

import "time"

// Activity is a class activity (outing, craft session, ...) optionally
// linked to the children who took part.
type Activity struct {
	ID       int64
	Name     string
	Time     time.Time
	ClassID  int64
	Image    string
	Children []int64
}
