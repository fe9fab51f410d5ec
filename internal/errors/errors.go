package errors

import "errors"

var (
	// ErrClientNotFound is returned when a client does not exist or belongs
	// to another user. The two cases are deliberately indistinguishable.
	ErrClientNotFound = errors.New("client not found")
	// ErrProjectNotFound is returned when a project does not exist or its
	// client belongs to another user.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNameRequired is returned when a required name field is empty.
	ErrNameRequired = errors.New("name is required")
	// ErrClientRequired is returned when a project is submitted without a client.
	ErrClientRequired = errors.New("client is required")
)

// UserMessage maps a domain error to the message flashed to the user.
// Unknown errors get a generic message so internals never leak into a page.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrClientNotFound):
		return "Client not found"
	case errors.Is(err, ErrProjectNotFound):
		return "Project not found"
	case errors.Is(err, ErrNameRequired):
		return "Name is required"
	case errors.Is(err, ErrClientRequired):
		return "Client is required"
	default:
		return "Something went wrong"
	}
}
