package decompiler

import (
	"fmt"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/op"
)

// handler decompiles one instruction of its category.
type handler func(s *state, ins bytecode.Instruction, info op.Info) error

var handlers = map[op.Category]handler{
	op.CatNop:                 handleNop,
	op.CatBreak:               handleBreak,
	op.CatPrefix:              handlePrefix,
	op.CatLoadArg:             handleLoadArg,
	op.CatLoadArgAddr:         handleLoadArgAddr,
	op.CatStoreArg:            handleStoreArg,
	op.CatLoadLocal:           handleLoadLocal,
	op.CatLoadLocalAddr:       handleLoadLocalAddr,
	op.CatStoreLocal:          handleStoreLocal,
	op.CatLoadNull:            handleLoadNull,
	op.CatLoadConst:           handleLoadConst,
	op.CatLoadString:          handleLoadString,
	op.CatLoadToken:           handleLoadToken,
	op.CatLoadFunction:        handleLoadFunction,
	op.CatLoadVirtFunction:    handleLoadVirtFunction,
	op.CatLoadIndirect:        handleLoadIndirect,
	op.CatStoreIndirect:       handleStoreIndirect,
	op.CatLoadElement:         handleLoadElement,
	op.CatLoadElementAddr:     handleLoadElementAddr,
	op.CatStoreElement:        handleStoreElement,
	op.CatLoadLength:          handleLoadLength,
	op.CatLoadField:           handleLoadField,
	op.CatLoadFieldAddr:       handleLoadFieldAddr,
	op.CatStoreField:          handleStoreField,
	op.CatLoadStaticField:     handleLoadStaticField,
	op.CatLoadStaticFieldAddr: handleLoadStaticFieldAddr,
	op.CatStoreStaticField:    handleStoreStaticField,
	op.CatBinary:              handleBinary,
	op.CatUnary:               handleUnary,
	op.CatCompare:             handleCompare,
	op.CatBranch:              handleBranch,
	op.CatCondBranch:          handleCondBranch,
	op.CatSwitch:              handleSwitch,
	op.CatLeave:               handleLeave,
	op.CatReturn:              handleReturn,
	op.CatThrow:               handleThrow,
	op.CatRethrow:             handleRethrow,
	op.CatCall:                handleCall,
	op.CatCallVirt:            handleCall,
	op.CatNewObj:              handleNewObj,
	op.CatConvert:             handleConvert,
	op.CatBox:                 handleBox,
	op.CatUnbox:               handleUnbox,
	op.CatUnboxAny:            handleUnboxAny,
	op.CatCastClass:           handleCastClass,
	op.CatIsInst:              handleIsInst,
	op.CatInitObj:             handleInitObj,
	op.CatNewArr:              handleNewArr,
	op.CatCopyObj:             handleCopyObj,
	op.CatDup:                 handleDup,
	op.CatPop:                 handlePop,
	op.CatEndFilter:           handleEndFilter,
	op.CatEndFinally:          handleEndFinally,
	op.CatCheckFinite:         handleCheckFinite,
	op.CatSizeOf:              handleSizeOf,
	op.CatUnsupported:         handleUnsupported,
}

func (s *state) instruction(ins bytecode.Instruction) error {
	info := ins.Info()
	if !info.IsValid() {
		return errz.Newf(errz.ErrUnsupportedInstruction, ins.Label, "unknown opcode 0x%x", uint16(ins.Code))
	}
	if err := s.enter(ins); err != nil {
		return err
	}
	h, ok := handlers[info.Category]
	if !ok {
		return errz.Newf(errz.ErrUnsupportedInstruction, ins.Label, "%s has no handler", info.Name)
	}
	return h(s, ins, info)
}

func handleUnsupported(s *state, ins bytecode.Instruction, info op.Info) error {
	return errz.Newf(errz.ErrUnsupportedInstruction, ins.Label, "%s is not supported", info.Name)
}

// marker opens or closes the block a synthetic marker delimits. The stack
// is empty at every region boundary of verifiable code.
func (s *state) marker(e Element) error {
	s.flushLabel()
	if n := s.stack.count(); n > 0 {
		s.trace.Warnf(e.Label, "%d values discarded at %s", n, e.Kind)
		s.stack.clear()
	}
	switch e.Kind {
	case ElemTryStart:
		s.blocks.open(codom.NewBlock(codom.BlockTry))
	case ElemTryEnd:
		return s.closeBlock(codom.BlockTry)
	case ElemFilterStart:
		s.openHandler(codom.BlockFilter, nil)
	case ElemFilterEnd:
		return s.closeBlock(codom.BlockFilter)
	case ElemHandlerStart:
		return s.handlerStart(e.Region)
	case ElemCatchEnd:
		return s.closeBlock(codom.BlockCatch)
	case ElemFilterHandlerEnd:
		return s.closeBlock(codom.BlockFilterHandler)
	case ElemFinallyEnd:
		return s.closeBlock(codom.BlockFinally)
	case ElemFaultEnd:
		return s.closeBlock(codom.BlockFault)
	}
	return nil
}

func (s *state) handlerStart(region *bytecode.ExceptionRegion) error {
	if region == nil {
		return errz.New(errz.ErrMalformedRegion, s.label, "handler start without region")
	}
	switch region.Kind {
	case bytecode.HandlerCatch:
		s.openHandler(codom.BlockCatch, region.CatchType)
	case bytecode.HandlerFilter:
		s.openHandler(codom.BlockFilterHandler, nil)
	case bytecode.HandlerFinally:
		s.blocks.open(codom.NewBlock(codom.BlockFinally))
	case bytecode.HandlerFault:
		s.blocks.open(codom.NewBlock(codom.BlockFault))
	default:
		return errz.Newf(errz.ErrMalformedRegion, s.label, "unknown handler kind %d", region.Kind)
	}
	return nil
}

// openHandler opens a block entered with the exception object on the stack
// and pushes a reference to it.
func (s *state) openHandler(kind codom.BlockKind, catchType *bytecode.TypeRef) {
	typ := catchType
	if typ == nil {
		typ = s.wk.Exception
	}
	name := "ex"
	if s.handlers > 0 {
		name = fmt.Sprintf("ex%d", s.handlers)
	}
	s.handlers++

	block := codom.NewBlock(kind)
	block.CatchType = catchType
	block.Exception = codom.NewReference(codom.RefException, name, typ)
	block.ShowVariable = true
	s.blocks.open(block)

	ref := block.Exception.Clone().(*codom.Reference)
	s.exceptions[ref] = block
	s.push(ref)
}

func (s *state) closeBlock(kind codom.BlockKind) error {
	_, err := s.blocks.close(kind, s.label)
	return err
}
