package reqscope

import "errors"

// ErrUnbalancedExit is the panic value raised by Exit under ExitPanic when
// the scope has no active request to pop.
var ErrUnbalancedExit = errors.New("reqscope: exit without matching enter")
