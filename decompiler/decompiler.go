// Package decompiler turns a method body into a codom tree.
//
// A Decompiler holds immutable configuration and may be shared between
// goroutines. Every call to Decompile builds a fresh state holding the
// symbolic stack, the block stack and the locals of that body, and processes
// the preprocessed element stream in a single left-to-right pass.
package decompiler

import (
	"errors"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/trace"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Mode selects how a decompilation reports recoverable errors.
type Mode uint8

const (
	// Strict returns the first error and no tree.
	Strict Mode = iota
	// Lenient records the error in the trace and returns the partial tree
	// built so far.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// Decompiler converts method bodies into codom trees.
type Decompiler struct {
	mode      Mode
	logger    zerolog.Logger
	resolver  bytecode.Resolver
	wellKnown *bytecode.WellKnown
	observer  Observer
}

// New returns a Decompiler configured with the given options.
func New(opts ...Option) *Decompiler {
	d := &Decompiler{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	if d.wellKnown == nil && d.resolver != nil {
		d.wellKnown = d.resolver.WellKnown()
	}
	if d.wellKnown == nil {
		d.wellKnown = bytecode.NewWellKnown()
	}
	if d.resolver == nil {
		d.resolver = bytecode.NewDefaultResolver(d.wellKnown)
	}
	return d
}

// Mode returns the configured error mode.
func (d *Decompiler) Mode() Mode {
	return d.mode
}

// WellKnown returns the table of built-in kinds in use.
func (d *Decompiler) WellKnown() *bytecode.WellKnown {
	return d.wellKnown
}

// Result is the outcome of one decompilation.
type Result struct {
	// ID correlates the result with the log lines written for it.
	ID     uuid.UUID
	Method *bytecode.MethodRef

	// Root holds the data section with the local declarations followed by
	// the code section with the executable statements.
	Root *codom.Block

	// Locals lists the declared locals, in slot order.
	Locals []bytecode.Local

	Trace []trace.Entry

	// Failed is the element being processed when a lenient decompilation
	// stopped early. It is nil when the whole stream was processed.
	Failed *Element

	// Err is the error a lenient decompilation recovered from.
	Err error
}

// Data returns the data section of the tree.
func (r *Result) Data() *codom.Block {
	return r.section(codom.BlockData)
}

// Code returns the code section of the tree.
func (r *Result) Code() *codom.Block {
	return r.section(codom.BlockCode)
}

func (r *Result) section(kind codom.BlockKind) *codom.Block {
	if r.Root == nil {
		return nil
	}
	for _, n := range r.Root.Stmts {
		if b, ok := n.(*codom.Block); ok && b.Kind == kind {
			return b
		}
	}
	return nil
}

// Render returns the text form of the tree. fn may be nil.
func (r *Result) Render(fn codom.RenderFunc) string {
	return codom.Render(r.Root, fn)
}

// Decompile converts body into a codom tree.
//
// In Strict mode any error is returned with a nil result. In Lenient mode
// recoverable errors are recorded in the trace and in Result.Err, and the
// tree built up to the failing element is returned with a nil error.
// Unsupported instructions and unreadable methods fail in both modes.
func (d *Decompiler) Decompile(body *bytecode.MethodBody) (*Result, error) {
	if body == nil || body.Method() == nil {
		return nil, errz.New(errz.ErrMemberNotReadable, "", "no method body")
	}
	method := body.Method()
	if !method.HasBody() {
		return nil, errz.Newf(errz.ErrMemberNotReadable, "", "%s has no body", method.FullName())
	}

	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.Nil
	}
	logger := d.logger.With().
		Str("decompilation", id.String()).
		Str("method", method.FullName()).
		Logger()
	tr := trace.New(logger)
	stats := body.Stats()
	tr.Begin("decompiling %s: %d instructions, %d regions, %d locals",
		method, stats.InstructionCount, stats.RegionCount, stats.LocalCount)
	if stats.Unsupported > 0 {
		tr.Infof("", "%d unsupported instructions", stats.Unsupported)
	}

	res := &Result{ID: id, Method: method}

	elements, err := Preprocess(body)
	if err != nil {
		if d.mode == Strict {
			return nil, err
		}
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				tr.Errorf(labelOf(e), "%s", e)
			}
		} else {
			tr.Errorf("", "%s", err)
		}
		res.Err = err
	}

	s := newState(d, body, tr)
	res.Root = s.root
	if err := s.run(elements); err != nil {
		if d.mode == Strict || errz.IsFatal(err) {
			return nil, err
		}
		tr.Errorf(labelOf(err), "%s", err)
		if s.index < len(elements) {
			failed := elements[s.index]
			res.Failed = &failed
		}
		if res.Err != nil {
			res.Err = multierror.Append(res.Err, err)
		} else {
			res.Err = err
		}
		s.abandon()
	}
	res.Locals = s.declared
	tr.Complete("decompiled %s: %d statements", method, s.emitted)
	res.Trace = tr.Entries()
	return res, nil
}

func labelOf(err error) string {
	var de *errz.DecompileError
	if errors.As(err, &de) {
		return de.Label
	}
	return ""
}
