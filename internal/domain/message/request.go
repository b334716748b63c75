package message

import (
	"errors"
	"strings"
)

var (
	// ErrBlankDestination is returned when the destination phone number is missing or blank.
	ErrBlankDestination = errors.New("phone number cannot be blank")
	// ErrBlankMessage is returned when the message body is missing or blank.
	ErrBlankMessage = errors.New("message cannot be blank")
)

// Request is an outgoing SMS as accepted from a client: who it goes to and
// what it says. The zero value is not valid; use NewRequest.
type Request struct {
	destinationPhoneNumber string
	message                string
}

// NewRequest builds a Request, rejecting a destination or body that is empty
// after trimming. The values themselves are kept exactly as given.
func NewRequest(destinationPhoneNumber, message string) (Request, error) {
	if strings.TrimSpace(destinationPhoneNumber) == "" {
		return Request{}, ErrBlankDestination
	}
	if strings.TrimSpace(message) == "" {
		return Request{}, ErrBlankMessage
	}

	return Request{
		destinationPhoneNumber: destinationPhoneNumber,
		message:                message,
	}, nil
}

// DestinationPhoneNumber is the recipient, expected in E.164 form.
func (r Request) DestinationPhoneNumber() string { return r.destinationPhoneNumber }

// Message is the SMS body.
func (r Request) Message() string { return r.message }
