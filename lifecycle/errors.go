package lifecycle

import "errors"

var ErrCallbackPanic = errors.New("lifecycle callback panicked")
