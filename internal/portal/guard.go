package portal

import (
	"fmt"
	"strings"

	"github.com/yigit/placementhub/internal/app/models"
)

// MismatchPolicy decides where a signed-in user with the wrong role is sent.
type MismatchPolicy string

const (
	// MismatchHome sends the user to their own role's home route.
	MismatchHome MismatchPolicy = "home"
	// MismatchLogin sends the user to the login page.
	MismatchLogin MismatchPolicy = "login"
)

// ParseMismatchPolicy accepts "home" or "login", case-insensitively. Empty means home.
func ParseMismatchPolicy(s string) (MismatchPolicy, error) {
	switch p := MismatchPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return MismatchHome, nil
	case MismatchHome, MismatchLogin:
		return p, nil
	}
	return "", fmt.Errorf("unknown mismatch policy %q", s)
}

// Outcome is the result kind of a guard check or route resolution.
type Outcome int

const (
	// Pending means the initial auth check has not finished; nothing should render yet.
	Pending Outcome = iota
	// Allow means the route renders as requested.
	Allow
	// Redirect means the user must be sent to Decision.Target.
	Redirect
	// NotFound means no route matches.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not-found"
	}
	return "unknown"
}

// Decision is what a guard or the navigator decided for a path.
type Decision struct {
	Outcome Outcome
	Target  string
}

// SessionView is the read side of the session store.
type SessionView interface {
	Current() (Session, bool)
	Loading() bool
}

// Guard gates protected route subtrees on the current session.
type Guard struct {
	sessions SessionView
	policy   MismatchPolicy
}

// NewGuard creates a guard over sessions. An unknown policy behaves as MismatchHome.
func NewGuard(sessions SessionView, policy MismatchPolicy) *Guard {
	if policy != MismatchLogin {
		policy = MismatchHome
	}
	return &Guard{sessions: sessions, policy: policy}
}

// Policy returns the configured mismatch policy.
func (g *Guard) Policy() MismatchPolicy {
	return g.policy
}

// Check decides whether the current session may enter a subtree open to allowed roles.
func (g *Guard) Check(allowed ...models.Role) Decision {
	if g.sessions.Loading() {
		return Decision{Outcome: Pending}
	}

	session, ok := g.sessions.Current()
	if !ok {
		return Decision{Outcome: Redirect, Target: LoginPath}
	}
	if hasRole(session.Role, allowed) {
		return Decision{Outcome: Allow}
	}

	if g.policy == MismatchLogin || !session.Role.Valid() {
		return Decision{Outcome: Redirect, Target: LoginPath}
	}
	return Decision{Outcome: Redirect, Target: session.Role.HomePath()}
}
