// Package bytecode provides immutable representations of a method body as it
// is handed to the decompiler.
//
// This package defines the input of decompilation: pure data structures that
// describe the instruction stream of one method, its exception regions, its
// locals and the members and types the instructions refer to. These types are
// produced by an external metadata reader (or by the asm package in tests) and
// are shared safely across goroutines decompiling different methods.
//
// # Key Types
//
//   - [MethodBody]: An immutable method body (instructions, regions, locals)
//   - [Instruction]: One opcode with its operand and label (value type)
//   - [Operand]: A tagged union of the inline operand kinds (value type)
//   - [ExceptionRegion]: A try range with one catch/filter/finally/fault handler
//   - [TypeRef], [MethodRef], [FieldRef]: Descriptors of referenced members
//   - [WellKnown]: The table of built-in kinds (bool, int32, object, ...)
//   - [Resolver]: Display-name lookup for members, supplied by the caller
//
// # Immutability Guarantees
//
// A [MethodBody] is immutable after construction: the constructor copies its
// input slices and only index-based accessors are provided:
//
//	body.InstructionAt(0)
//	body.RegionAt(i)
//	body.LocalAt(j)
//
// Descriptors ([TypeRef], [MethodRef], [FieldRef]) are plain structs. The
// decompiler only ever reads them, so a single descriptor graph may be shared
// by any number of concurrent decompilations.
//
// # Labels
//
// Every instruction carries a label derived from its byte offset, for example
// "IL_001a". Branch operands and region boundaries refer to instructions by
// these labels. The label one past the last instruction ([MethodBody.EndLabel])
// marks the end of the body and is a valid exclusive region boundary.
package bytecode
