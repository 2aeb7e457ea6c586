package gamereport

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/sfgleague/gridiron/internal/platform"
)

var (
	// ErrNotSubmitter is returned when anyone but the original submitter
	// touches a session's menus.
	ErrNotSubmitter = errors.New("only the report submitter can use this menu")
	// ErrSessionClosed covers expired, posted and failed sessions.
	ErrSessionClosed = errors.New("report session is closed")
	// ErrAlreadyPosted is returned on a duplicate final confirmation.
	ErrAlreadyPosted = errors.New("game report already posted")
	// ErrUnknownSession is returned for session IDs the reconciler does
	// not track (restarts drop in-flight sessions by design of the flow).
	ErrUnknownSession = errors.New("unknown report session")
	// ErrUnknownChoice is returned when a menu value matches no option.
	ErrUnknownChoice = errors.New("selection does not match an open option")
)

// State is a report session's position in the confirmation flow.
type State int

const (
	// StateAwaitingOwnGroup: submitter team was not detected from roles,
	// so the submitter first picks their own team, group then exact team.
	StateAwaitingOwnGroup State = iota
	StateAwaitingOwnTeam
	StateAwaitingOpponentGroup
	StateAwaitingOpponentTeam
	StatePosted
	StateFailed
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAwaitingOwnGroup:
		return "awaiting_own_group"
	case StateAwaitingOwnTeam:
		return "awaiting_own_team"
	case StateAwaitingOpponentGroup:
		return "awaiting_opponent_group"
	case StateAwaitingOpponentTeam:
		return "awaiting_opponent_team"
	case StatePosted:
		return "posted"
	case StateFailed:
		return "failed"
	case StateExpired:
		return "expired"
	}
	return "unknown"
}

// MenuOption is one selectable entry shown to the submitter.
type MenuOption struct {
	Label       string
	Value       string
	Description string
}

// Menu is the next prompt the adapter should render.
type Menu struct {
	Prompt  string
	Options []MenuOption
}

// Session is one in-flight game report awaiting opponent confirmation.
// All mutable fields are guarded by mu; the reconciler never holds the
// lock across a network call.
type Session struct {
	ID          uuid.UUID
	GameID      string
	SubmitterID string
	OwnScore    int
	OppScore    int
	Images      []platform.Attachment

	mu       sync.Mutex
	state    State
	ownTeam  string // canonical once known
	posted   bool
	ownGroup string
	timer    clockwork.Timer
}

// State returns the session's current flow position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OwnTeam returns the submitter's canonical team, "" while unknown.
func (s *Session) OwnTeam() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownTeam
}

// expire closes the session when the confirmation timer fires. Terminal
// sessions are left alone.
func (s *Session) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StatePosted, StateFailed, StateExpired:
		return
	}
	s.state = StateExpired
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
	}
}
