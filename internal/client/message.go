package client

import "time"

// Message is a short, timestamped status line the client queues to show
// the user (in a real front end, below the mini-buffer).
type Message struct {
	Text      string
	Timestamp time.Time
}
