package squad

// Verdict is the outcome of a placement intent. Rejections are expected,
// silent outcomes of direct-manipulation UI logic, not errors: a rejected
// intent leaves the engine state untouched.
type Verdict string

// Placement verdicts.
const (
	VerdictAccepted      Verdict = "accepted"
	VerdictRoleMismatch  Verdict = "role_mismatch"
	VerdictDuplicate     Verdict = "duplicate"
	VerdictUnknownSlot   Verdict = "unknown_slot"
	VerdictUnknownPlayer Verdict = "unknown_player"
	VerdictNoSelection   Verdict = "no_selection"
)

// OK reports whether the intent was committed.
func (v Verdict) OK() bool { return v == VerdictAccepted }

func (v Verdict) String() string { return string(v) }
