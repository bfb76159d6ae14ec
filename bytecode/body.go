package bytecode

// MethodBody is the instruction stream of one method together with its
// exception regions and locals. It is immutable after creation and safe for
// concurrent use.
type MethodBody struct {
	method       *MethodRef
	instructions []Instruction
	regions      []ExceptionRegion
	locals       []Local
	codeSize     int
	initLocals   bool
}

// MethodBodyParams contains parameters for creating a new MethodBody.
type MethodBodyParams struct {
	Method       *MethodRef
	Instructions []Instruction
	Regions      []ExceptionRegion
	Locals       []Local
	InitLocals   bool
}

// NewMethodBody creates a new immutable MethodBody from the given parameters.
// Input slices are copied to ensure immutability.
func NewMethodBody(params MethodBodyParams) *MethodBody {
	body := &MethodBody{
		method:       params.Method,
		instructions: copySlice(params.Instructions),
		regions:      copySlice(params.Regions),
		locals:       copySlice(params.Locals),
		initLocals:   params.InitLocals,
	}
	if n := len(body.instructions); n > 0 {
		last := body.instructions[n-1]
		body.codeSize = last.Offset + last.Size()
	}
	return body
}

// Method returns the method the body belongs to.
func (b *MethodBody) Method() *MethodRef {
	return b.method
}

// InstructionCount returns the number of instructions.
func (b *MethodBody) InstructionCount() int {
	return len(b.instructions)
}

// InstructionAt returns the instruction at the given index.
func (b *MethodBody) InstructionAt(index int) Instruction {
	return b.instructions[index]
}

// RegionCount returns the number of exception regions.
func (b *MethodBody) RegionCount() int {
	return len(b.regions)
}

// RegionAt returns the exception region at the given index.
func (b *MethodBody) RegionAt(index int) ExceptionRegion {
	return b.regions[index]
}

// LocalCount returns the number of local variable slots.
func (b *MethodBody) LocalCount() int {
	return len(b.locals)
}

// LocalAt returns the local variable at the given index.
func (b *MethodBody) LocalAt(index int) Local {
	return b.locals[index]
}

// CodeSize returns the size of the instruction stream in bytes.
func (b *MethodBody) CodeSize() int {
	return b.codeSize
}

// EndLabel returns the label one past the last instruction.
func (b *MethodBody) EndLabel() string {
	return LabelFor(b.codeSize)
}

// InitLocals reports whether locals are zero-initialized on entry.
func (b *MethodBody) InitLocals() bool {
	return b.initLocals
}

func copySlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}
