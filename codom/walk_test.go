package codom

import (
	"testing"

	"github.com/deepnoodle-ai/codom/op"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	// local0 = local0 + 1
	block := NewBlock(BlockCode)
	block.Append(NewAssign(local(0), NewBinary(op.Addition, local(0), NewLiteral(int32(1), wk.Int32), wk.Int32)))

	var visited []string
	Inspect(block, func(n Node) bool {
		switch node := n.(type) {
		case *Block:
			visited = append(visited, "Block")
		case *Assign:
			visited = append(visited, "Assign")
		case *Operation:
			visited = append(visited, "Operation:"+node.Binary.String())
		case *Reference:
			visited = append(visited, "Reference")
		case *Constant:
			visited = append(visited, "Constant")
		}
		return true
	})
	require.Equal(t, []string{"Block", "Assign", "Reference", "Operation:+", "Reference", "Constant"}, visited)
}

func TestInspectSkipsChildren(t *testing.T) {
	stmt := NewIf(NewCompare(op.Equal, local(0), local(1), wk.Bool), NewGoto("IL_0010"))
	count := 0
	Inspect(stmt, func(n Node) bool {
		count++
		_, isOp := n.(*Operation)
		return !isOp
	})
	// If, Operation, Block, Branch
	require.Equal(t, 4, count)
}

func TestPreorderStops(t *testing.T) {
	block := NewBlock(BlockCode)
	for i := 0; i < 5; i++ {
		block.Append(NewReturn(nil))
	}
	count := 0
	for range Preorder(block) {
		count++
		if count == 3 {
			break
		}
	}
	require.Equal(t, 3, count)
}
