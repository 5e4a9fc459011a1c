// internal/workflow/state.go
package workflow

// State tracks the run through the two-stage pipeline. LoginFailed, Done
// and UploadFailed are terminal; every terminal state routes to cleanup.
type State int

const (
	StateInit State = iota
	StateLoggingIn
	StateLoggedIn
	StateLoginFailed
	StateUploadingResume
	StateDone
	StateUploadFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateLoggingIn:
		return "logging-in"
	case StateLoggedIn:
		return "logged-in"
	case StateLoginFailed:
		return "login-failed"
	case StateUploadingResume:
		return "uploading-resume"
	case StateDone:
		return "done"
	case StateUploadFailed:
		return "upload-failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the run.
func (s State) Terminal() bool {
	switch s {
	case StateLoginFailed, StateDone, StateUploadFailed:
		return true
	default:
		return false
	}
}
