package session

// Decision is the outcome of an access check. These are values, never
// errors: a guard has no side effects and is safe to call on every
// navigation.
type Decision int

const (
	// DecisionPending means the initial restore attempt has not finished;
	// callers must not fall through to a destructive default.
	DecisionPending Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "pending"
	}
}

// Authorize is the single access rule, shared by the store-backed guard and
// the per-request HTTP middleware.
func Authorize(state State, restored bool, current *Session, requiredRole *Role) Decision {
	if !restored || state == StateAuthenticating {
		return DecisionPending
	}
	if state != StateAuthenticated || current == nil {
		return DecisionRedirectLogin
	}
	if requiredRole != nil && current.Role != *requiredRole {
		return DecisionRedirectUnauthorized
	}
	return DecisionAllow
}

// Guard gates views based on the store's current state.
type Guard struct {
	store *Store
}

func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

func (g *Guard) Authorize(requiredRole *Role) Decision {
	return Authorize(g.store.State(), g.store.Restored(), g.store.Current(), requiredRole)
}
