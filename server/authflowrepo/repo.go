package authflowrepo

import "time"

// FlowState holds the transient values minted when a login is begun, keyed by
// the anti-forgery state parameter. Entries live only between the /login
// redirect and the callback; the caller deletes them after one use.
type FlowState struct {
	CodeVerifier string
	Nonce        string
	ReturnURL    string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, flowState *FlowState) error
	Get(state string) (*FlowState, error)
	Delete(state string) error
}
