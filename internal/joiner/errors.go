package joiner

import "errors"

var (
	// ErrBlocked means the host does not allow guests or denied the request.
	ErrBlocked = errors.New("meeting blocked or request denied")
	// ErrNoJoinControl means no join control was found on the page.
	ErrNoJoinControl = errors.New("no join control found")
	// ErrAdmissionTimeout means nobody admitted the bot in time.
	ErrAdmissionTimeout = errors.New("admission timed out")
)
