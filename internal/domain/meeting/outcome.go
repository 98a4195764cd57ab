package meeting

// NotifyOutcome reports the best-effort delivery that follows a completion.
// A failed delivery never undoes the completion.
type NotifyOutcome struct {
	EmailSent  bool   `json:"emailSent"`
	EmailError string `json:"emailError,omitempty"`
}

// NotifyFailed builds a failed outcome
func NotifyFailed(reason string) NotifyOutcome {
	return NotifyOutcome{EmailSent: false, EmailError: reason}
}

// CompleteResult pairs the committed meeting with the advisory delivery outcome
type CompleteResult struct {
	Meeting      *Meeting
	Notification NotifyOutcome
}
