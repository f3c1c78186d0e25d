package remote

import "errors"

type Kind int

const (
	// KindRemote is a network or server failure, surfaced once and never retried.
	KindRemote Kind = iota
	// KindAuth means the credential was rejected, the caller must force a re-login.
	KindAuth
	// KindNotFound maps 404 responses, e.g. an unknown booking reference.
	KindNotFound
)

type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindAuth:
		return "authorization required"
	case KindNotFound:
		return "not found"
	default:
		return "request failed"
	}
}

func IsAuth(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindAuth
}

func IsNotFound(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindNotFound
}

// ServerMessage returns the server-supplied message if the error carries one.
func ServerMessage(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
