package state

import "github.com/viant/sessionauth/schema"

// Kind enumerates authentication states.
type Kind int

const (
	Uninitialized Kind = iota
	Checking
	WidgetAwaited
	Unauthenticated
	Exchanging
	Authenticated
	Failed
)

var kindNames = [...]string{
	Uninitialized:   "uninitialized",
	Checking:        "checking",
	WidgetAwaited:   "widget_awaited",
	Unauthenticated: "unauthenticated",
	Exchanging:      "exchanging",
	Authenticated:   "authenticated",
	Failed:          "failed",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Terminal reports whether k settles startup.
func (k Kind) Terminal() bool {
	return k == Authenticated || k == Unauthenticated || k == Failed
}

// State is an immutable authentication state value.
// User is only set for Authenticated, Reason only for Failed.
type State struct {
	Kind   Kind
	User   *schema.User
	Reason string
}

func (s State) String() string {
	switch s.Kind {
	case Authenticated:
		if s.User != nil {
			return s.Kind.String() + "(" + s.User.ID + ")"
		}
	case Failed:
		return s.Kind.String() + "(" + s.Reason + ")"
	}
	return s.Kind.String()
}

// Of returns a state of the given kind with no payload.
func Of(kind Kind) State {
	return State{Kind: kind}
}

// AuthenticatedAs returns an Authenticated state holding a copy of user.
func AuthenticatedAs(user *schema.User) State {
	u := *user
	return State{Kind: Authenticated, User: &u}
}

// FailedWith returns a Failed state carrying reason.
func FailedWith(reason string) State {
	return State{Kind: Failed, Reason: reason}
}
