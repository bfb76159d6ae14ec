package codom

import "github.com/deepnoodle-ai/codom/bytecode"

// BlockKind tags the variants of Block.
type BlockKind uint8

const (
	BlockPlain BlockKind = iota
	BlockTry
	BlockCatch
	BlockFilter
	BlockFilterHandler
	BlockFinally
	BlockFault
	BlockData
	BlockCode
)

var blockKindNames = map[BlockKind]string{
	BlockPlain:         "block",
	BlockTry:           "try",
	BlockCatch:         "catch",
	BlockFilter:        "filter",
	BlockFilterHandler: "handler",
	BlockFinally:       "finally",
	BlockFault:         "fault",
	BlockData:          "data",
	BlockCode:          "code",
}

func (k BlockKind) String() string {
	return blockKindNames[k]
}

// IsSection reports whether blocks of this kind only delimit the locals
// and the executable statements of a method, and render without braces.
func (k BlockKind) IsSection() bool {
	return k == BlockData || k == BlockCode
}

// Block is an ordered sequence of statements.
type Block struct {
	base
	Kind  BlockKind
	Stmts []Node

	// Exception is the reference to the caught exception object of catch,
	// filter and filter-handler blocks.
	Exception *Reference
	CatchType *bytecode.TypeRef

	// ShowVariable is cleared when the exception object is discarded
	// without being used, so the catch clause renders without a variable.
	ShowVariable bool
}

// NewBlock returns an empty block of the given kind.
func NewBlock(kind BlockKind) *Block {
	return &Block{Kind: kind}
}

// Append adds n as the last statement of the block.
func (b *Block) Append(n Node) {
	b.Stmts = append(b.Stmts, n)
}

// Len returns the number of statements in the block.
func (b *Block) Len() int {
	return len(b.Stmts)
}

func (b *Block) stmtNode() {}

func (b *Block) Clone() Node {
	c := *b
	c.label = ""
	if b.Stmts != nil {
		c.Stmts = make([]Node, len(b.Stmts))
		for i, s := range b.Stmts {
			c.Stmts[i] = s.Clone()
		}
	}
	if b.Exception != nil {
		c.Exception = b.Exception.Clone().(*Reference)
	}
	return &c
}
