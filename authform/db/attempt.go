package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attempt holds the record of a single form submission to the remote
// authentication API.  Secrets (passwords) are never stored.
type Attempt struct {
	// Attempt ID (UUID)
	ID string `xorm:"pk"`
	// Endpoint suffix the submission was sent to (e.g., /api/sessions)
	Endpoint string `xorm:"index"`
	// Email (or other non-secret identifier) the submission was made for
	Identity string `xorm:"index"`
	// Whether the request was sent with credentials (cookies)
	WithCredentials bool
	// HTTP status code of the response (0 on transport failure or while in
	// flight)
	StatusCode int
	// Whether the submission succeeded
	Success bool
	// Failure message surfaced to the user
	Message string
	// Time when the submission was sent
	SubmitTime time.Time
	// Time when the response arrived (0 while in flight)
	EndTime time.Time
}

// NewAttempt creates a new in-flight Attempt with a new unique ID.
func NewAttempt(endpoint, identity string, withCredentials bool) *Attempt {
	a := new(Attempt)
	a.ID = uuid.New().String()
	a.Endpoint = endpoint
	a.Identity = identity
	a.WithCredentials = withCredentials
	a.SubmitTime = time.Now()
	return a
}

// IsFinished returns true if the Attempt has finished (has an EndTime).
func (a Attempt) IsFinished() bool {
	return !a.EndTime.IsZero()
}

// InsertAttempt inserts a new Attempt into the database.
func (conn *Connection) InsertAttempt(a *Attempt) error {
	_, err := conn.engine.Insert(a)
	return err
}

// UpdateAttempt updates an existing Attempt entry in the database.
func (conn *Connection) UpdateAttempt(a *Attempt) error {
	_, err := conn.engine.ID(a.ID).AllCols().Update(a)
	return err
}

// GetIdentityAttempts retrieves all the Attempts made for a given identity,
// most recent first.
func (conn *Connection) GetIdentityAttempts(identity string) ([]Attempt, error) {
	attempts := make([]Attempt, 0)
	condition := Attempt{Identity: identity}
	if err := conn.engine.Desc("submit_time").Find(&attempts, condition); err != nil {
		return nil, err
	}
	return attempts, nil
}

// AllAttempts returns all Attempt entries in the database, most recent first.
func (conn *Connection) AllAttempts() ([]Attempt, error) {
	attempts := make([]Attempt, 0)
	if err := conn.engine.Desc("submit_time").Find(&attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// GetAttempt retrieves an Attempt from the database given its ID.
func (conn *Connection) GetAttempt(id string) (*Attempt, error) {
	a := new(Attempt)
	a.ID = id
	if has, err := conn.engine.Get(a); err != nil {
		return nil, err
	} else if !has {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}
