package scene

import (
	"errors"
	"fmt"
)

// ErrContextLost is the cause recorded when the renderer reports that its
// drawing context is gone.
var ErrContextLost = errors.New("rendering context lost")

// InstanceFault describes one plant instance that could not be composed. It
// is logged and the instance is skipped; it never reaches the user.
type InstanceFault struct {
	RecordID string
	Index    int
	Stage    string
	Err      error
}

func (e *InstanceFault) Error() string {
	return fmt.Sprintf("instance %d (%s) failed at %s: %v", e.Index, e.RecordID, e.Stage, e.Err)
}

func (e *InstanceFault) Unwrap() error {
	return e.Err
}

// CatastrophicRenderFault is a fault that cannot be isolated to a single
// instance. It escalates to the Boundary.
type CatastrophicRenderFault struct {
	Reason string
	Err    error
}

func (e *CatastrophicRenderFault) Error() string {
	if e.Err == nil {
		return "render fault: " + e.Reason
	}
	return fmt.Sprintf("render fault: %s: %v", e.Reason, e.Err)
}

func (e *CatastrophicRenderFault) Unwrap() error {
	return e.Err
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
