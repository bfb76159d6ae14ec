package decompiler

import (
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/errz"
)

// symbolicStack simulates the evaluation stack with the expressions that
// would produce each slot.
type symbolicStack struct {
	items []codom.Value
}

func (s *symbolicStack) push(v codom.Value) {
	v.SetInline(true)
	s.items = append(s.items, v)
}

// pop removes and returns the top value. label names the instruction being
// processed and is only used in the error.
func (s *symbolicStack) pop(label string) (codom.Value, error) {
	if len(s.items) == 0 {
		return nil, errz.New(errz.ErrStackUnderflow, label, "pop on empty stack")
	}
	top := len(s.items) - 1
	v := s.items[top]
	s.items[top] = nil
	s.items = s.items[:top]
	return v, nil
}

// popN removes n values and returns them in push order.
func (s *symbolicStack) popN(n int, label string) ([]codom.Value, error) {
	if n > len(s.items) {
		return nil, errz.Newf(errz.ErrStackUnderflow, label,
			"need %d values, stack holds %d", n, len(s.items))
	}
	out := make([]codom.Value, n)
	for i := n - 1; i >= 0; i-- {
		out[i], _ = s.pop(label)
	}
	return out, nil
}

func (s *symbolicStack) peek(label string) (codom.Value, error) {
	if len(s.items) == 0 {
		return nil, errz.New(errz.ErrStackUnderflow, label, "peek on empty stack")
	}
	return s.items[len(s.items)-1], nil
}

func (s *symbolicStack) clear() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *symbolicStack) count() int {
	return len(s.items)
}

// blockStack tracks the blocks that are open at the current position.
// Statements are appended to the innermost open block, or to the root when
// none is open.
type blockStack struct {
	root  *codom.Block
	items []*codom.Block
}

func newBlockStack(root *codom.Block) *blockStack {
	return &blockStack{root: root}
}

// open appends block to the current block and makes it current.
func (b *blockStack) open(block *codom.Block) {
	b.emit(block)
	b.items = append(b.items, block)
}

// close pops the current block, which must be of the given kind.
func (b *blockStack) close(kind codom.BlockKind, label string) (*codom.Block, error) {
	if len(b.items) == 0 {
		return nil, errz.Newf(errz.ErrStackUnderflow, label, "no open block to close as %s", kind)
	}
	top := b.items[len(b.items)-1]
	if top.Kind != kind {
		return nil, errz.Newf(errz.ErrMalformedRegion, label,
			"closing %s block while %s block is open", kind, top.Kind)
	}
	b.items = b.items[:len(b.items)-1]
	return top, nil
}

// pop removes the current block regardless of its kind.
func (b *blockStack) pop() *codom.Block {
	if len(b.items) == 0 {
		return nil
	}
	top := b.items[len(b.items)-1]
	b.items = b.items[:len(b.items)-1]
	return top
}

func (b *blockStack) current() *codom.Block {
	if len(b.items) == 0 {
		return nil
	}
	return b.items[len(b.items)-1]
}

func (b *blockStack) emit(n codom.Node) {
	if cur := b.current(); cur != nil {
		cur.Append(n)
		return
	}
	b.root.Append(n)
}

func (b *blockStack) depth() int {
	return len(b.items)
}
