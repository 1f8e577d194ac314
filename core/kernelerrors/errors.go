// Package kernelerrors defines the kernel's error taxonomy as sentinel
// errors, wrapped with context via fmt.Errorf("...: %w", ...) at each
// raise site. Recoverable conditions (collision, layout conflict) are
// deliberately NOT part of this taxonomy — they are first-class boolean
// or tuple return values at their call sites, per the propagation policy.
package kernelerrors

import "errors"

var (
	// ErrEmptyLayout is raised by robust union on an empty room list.
	ErrEmptyLayout = errors.New("empty layout")

	// ErrUnionFailed is raised when no fallback stage of the geometry
	// authority's union produced a polygonal result.
	ErrUnionFailed = errors.New("union failed")

	// ErrDuplicateName is raised by SceneGrid.Place when an object with
	// the same name is already indexed.
	ErrDuplicateName = errors.New("duplicate object name")

	// ErrGeneration wraps a non-empty validation report; raised by the
	// mesh validator's gate and re-raised by the pipeline orchestrator
	// with spec_id context attached.
	ErrGeneration = errors.New("generation failed")
)

// GenerationError carries the full validation report alongside the
// identifying spec ID, per the spec's propagation policy ("the
// orchestrator attaches spec_id context and re-raises").
type GenerationError struct {
	SpecID   string
	Errors   []string
	Warnings []string
}

func (e *GenerationError) Error() string {
	msg := "mesh validation failed — spec_id=" + e.SpecID
	for _, s := range e.Errors {
		msg += "\n ERROR: " + s
	}
	for _, w := range e.Warnings {
		msg += "\n WARN: " + w
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return ErrGeneration
}
