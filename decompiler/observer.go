package decompiler

import (
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/op"
)

// Observer is an interface for observing decompilation events. It can be
// used for tracing, or to bound the work done on a single method body.
//
// Observer methods are called synchronously while the element stream is
// processed. Returning false from either method stops the decompilation
// with an ErrHalted error.
type Observer interface {
	// OnStep is called before each element is processed.
	OnStep(event StepEvent) bool

	// OnEmit is called after a statement is appended to a block.
	OnEmit(event EmitEvent) bool
}

// StepEvent contains information about a single element.
type StepEvent struct {
	// Index is the position of the element in the preprocessed stream.
	Index int

	// Element is the element about to be processed.
	Element Element

	// Opcode is the opcode of instruction elements.
	Opcode op.Code

	// StackDepth is the number of values on the symbolic stack.
	StackDepth int

	// BlockDepth is the number of open blocks.
	BlockDepth int
}

// EmitEvent contains information about an emitted statement.
type EmitEvent struct {
	// Node is the statement that was appended.
	Node codom.Node

	// Block is the block it was appended to.
	Block *codom.Block
}

// NoOpObserver is an Observer implementation that does nothing. Embed it to
// provide default implementations for methods you don't need.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool { return true }
func (NoOpObserver) OnEmit(EmitEvent) bool { return true }

// StepLimit returns an observer that halts after limit elements.
func StepLimit(limit int) Observer {
	return stepLimit{limit: limit}
}

type stepLimit struct {
	NoOpObserver
	limit int
}

func (s stepLimit) OnStep(event StepEvent) bool {
	return event.Index < s.limit
}

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}
