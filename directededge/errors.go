package directededge

import (
	"errors"
	"fmt"
)


var ErrTransportClosed = errors.New("Transport closed")

var ErrMalformedDocument = errors.New("Malformed document")

var ErrNoTransport = errors.New("Database has no transport")


type StatusError struct {
	StatusCode int
	Message    string
}

func (self *StatusError) Error() string {
	if self.Message == "" {
		return fmt.Sprintf("status %d", self.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", self.StatusCode, self.Message)
}

func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == 404
	}
	return false
}
