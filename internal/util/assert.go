package assert

import "log"

// Success unwraps must-succeed calls, such as raw wire writes to an
// already-open stream, where no recovery is possible.
func Success[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}
