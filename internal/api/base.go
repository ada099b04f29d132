package api

import "time"

// DefaultBaseURL is where the host application serves its project bridge.
const DefaultBaseURL = "http://localhost:9321"

// NewDefaultClient builds a client pointed at the default bridge URL.
func NewDefaultClient(token string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, token, timeout...)
}
