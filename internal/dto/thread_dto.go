package dto

// ThreadNodeResponse is one reply in a reconstructed thread. Depth 0 is a
// direct reply to the root.
type ThreadNodeResponse struct {
	Message MessageResponse       `json:"message"`
	Depth   int                   `json:"depth"`
	Replies []*ThreadNodeResponse `json:"replies"`
}

type GetThreadResponse struct {
	Root    MessageResponse       `json:"root"`
	Replies []*ThreadNodeResponse `json:"replies"`
}
