package bytecode

import "github.com/deepnoodle-ai/codom/op"

// Stats contains statistics about a method body.
// This is useful for auditing a body before decompiling it.
type Stats struct {
	// InstructionCount is the total number of instructions.
	InstructionCount int

	// CodeSize is the size of the instruction stream in bytes.
	CodeSize int

	// RegionCount is the number of exception regions.
	RegionCount int

	// LocalCount is the number of local variable slots.
	LocalCount int

	// BranchTargets is the number of distinct labels jumped to.
	BranchTargets int

	// Unsupported is the number of instructions the decompiler rejects.
	Unsupported int
}

// Stats returns statistics about the method body.
func (b *MethodBody) Stats() Stats {
	stats := Stats{
		InstructionCount: len(b.instructions),
		CodeSize:         b.codeSize,
		RegionCount:      len(b.regions),
		LocalCount:       len(b.locals),
	}
	stats.BranchTargets = len(b.BranchTargets())
	for _, instr := range b.instructions {
		if instr.Info().Category == op.CatUnsupported {
			stats.Unsupported++
		}
	}
	return stats
}

// BranchTargets returns the set of labels referenced by branch, leave and
// switch operands.
func (b *MethodBody) BranchTargets() map[string]bool {
	targets := map[string]bool{}
	for _, instr := range b.instructions {
		switch instr.Operand.Kind() {
		case OperandTarget:
			targets[instr.Operand.Target()] = true
		case OperandSwitch:
			for i := 0; i < instr.Operand.TargetCount(); i++ {
				targets[instr.Operand.TargetAt(i)] = true
			}
		}
	}
	return targets
}
