package wp

import "fmt"

type UnexpectedStatusError struct {
	Status int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

func UnexpectedStatus(status int) error {
	return &UnexpectedStatusError{Status: status}
}

type MalformedValueError struct {
	Body string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed counter value %q", e.Body)
}

func MalformedValue(body string) error {
	return &MalformedValueError{Body: body}
}
