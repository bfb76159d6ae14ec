package decompiler

import (
	"fmt"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/hashicorp/go-multierror"
)

// ElementKind tags the entries of a preprocessed element stream.
type ElementKind uint8

const (
	ElemInstruction ElementKind = iota
	ElemTryStart
	ElemTryEnd
	ElemFilterStart
	ElemFilterEnd
	ElemHandlerStart
	ElemCatchEnd
	ElemFilterHandlerEnd
	ElemFinallyEnd
	ElemFaultEnd
)

var elementKindNames = map[ElementKind]string{
	ElemInstruction:      "instruction",
	ElemTryStart:         "try-start",
	ElemTryEnd:           "try-end",
	ElemFilterStart:      "filter-start",
	ElemFilterEnd:        "filter-end",
	ElemHandlerStart:     "handler-start",
	ElemCatchEnd:         "catch-end",
	ElemFilterHandlerEnd: "filter-handler-end",
	ElemFinallyEnd:       "finally-end",
	ElemFaultEnd:         "fault-end",
}

func (k ElementKind) String() string {
	return elementKindNames[k]
}

// Element is either an instruction or a synthetic marker delimiting an
// exception-handling block.
type Element struct {
	Kind        ElementKind
	Instruction bytecode.Instruction // instructions only

	// Region is the exception region a marker was derived from. Shared try
	// markers refer to the first region declaring the range.
	Region *bytecode.ExceptionRegion

	// Label is the instruction label the marker precedes, or the end label of
	// the body for markers after the last instruction.
	Label string
}

// IsMarker reports whether the element is a synthetic marker.
func (e Element) IsMarker() bool {
	return e.Kind != ElemInstruction
}

func (e Element) String() string {
	if !e.IsMarker() {
		return e.Instruction.String()
	}
	if e.Kind == ElemHandlerStart && e.Region != nil {
		return fmt.Sprintf("%s: <%s %s>", e.Label, e.Kind, e.Region.Kind)
	}
	return fmt.Sprintf("%s: <%s>", e.Label, e.Kind)
}

func handlerEndKind(k bytecode.HandlerKind) ElementKind {
	switch k {
	case bytecode.HandlerFilter:
		return ElemFilterHandlerEnd
	case bytecode.HandlerFinally:
		return ElemFinallyEnd
	case bytecode.HandlerFault:
		return ElemFaultEnd
	default:
		return ElemCatchEnd
	}
}

type tryRange struct {
	start, end string
}

// Preprocess merges the exception regions of body into its instruction
// stream as synthetic markers, each inserted immediately before the
// instruction whose label matches the boundary. Regions sharing a try range
// produce one TryStart/TryEnd pair, and regions sharing a filter start one
// FilterStart/FilterEnd pair.
//
// At one position, close markers precede open markers. Closes follow region
// order and opens follow reverse region order, since inner regions are listed
// before the regions enclosing them.
//
// Boundaries that do not resolve to an instruction are collected into the
// returned error, one MalformedRegion error each; their markers are omitted
// and the remaining elements are still returned.
func Preprocess(body *bytecode.MethodBody) ([]Element, error) {
	n := body.InstructionCount()
	positions := make(map[string]int, n+1)
	for i := 0; i < n; i++ {
		positions[body.InstructionAt(i).Label] = i
	}
	positions[body.EndLabel()] = n

	closes := make([][]Element, n+1)
	opens := make([][]Element, n+1)
	var result *multierror.Error

	resolve := func(region int, what, label string) (int, bool) {
		pos, ok := positions[label]
		if !ok || label == "" {
			result = multierror.Append(result, errz.Newf(errz.ErrMalformedRegion, label,
				"region %d: %s %q does not match any instruction", region, what, label))
			return 0, false
		}
		return pos, true
	}
	labelAt := func(pos int) string {
		if pos == n {
			return body.EndLabel()
		}
		return body.InstructionAt(pos).Label
	}
	open := func(pos int, kind ElementKind, region *bytecode.ExceptionRegion) {
		opens[pos] = append(opens[pos], Element{Kind: kind, Region: region, Label: labelAt(pos)})
	}
	closeAt := func(pos int, kind ElementKind, region *bytecode.ExceptionRegion) {
		closes[pos] = append(closes[pos], Element{Kind: kind, Region: region, Label: labelAt(pos)})
	}

	seenTry := map[tryRange]bool{}
	seenFilter := map[string]bool{}
	for i := 0; i < body.RegionCount(); i++ {
		r := body.RegionAt(i)
		region := &r

		tr := tryRange{r.TryStart, r.TryEnd}
		if !seenTry[tr] {
			start, okStart := resolve(i, "try start", r.TryStart)
			end, okEnd := resolve(i, "try end", r.TryEnd)
			if okStart && okEnd {
				if start >= end {
					result = multierror.Append(result, errz.Newf(errz.ErrMalformedRegion, r.TryStart,
						"region %d: empty try range %s to %s", i, r.TryStart, r.TryEnd))
				} else {
					seenTry[tr] = true
					open(start, ElemTryStart, region)
					closeAt(end, ElemTryEnd, region)
				}
			}
		}

		if r.Kind == bytecode.HandlerFilter && !seenFilter[r.FilterStart] {
			start, okStart := resolve(i, "filter start", r.FilterStart)
			end, okEnd := resolve(i, "handler start", r.HandlerStart)
			if okStart && okEnd {
				seenFilter[r.FilterStart] = true
				open(start, ElemFilterStart, region)
				closeAt(end, ElemFilterEnd, region)
			}
		}

		if start, ok := resolve(i, "handler start", r.HandlerStart); ok {
			open(start, ElemHandlerStart, region)
		}
		if end, ok := resolve(i, "handler end", r.HandlerEnd); ok {
			closeAt(end, handlerEndKind(r.Kind), region)
		}
	}

	elements := make([]Element, 0, n+4*body.RegionCount())
	for pos := 0; pos <= n; pos++ {
		elements = append(elements, closes[pos]...)
		for j := len(opens[pos]) - 1; j >= 0; j-- {
			elements = append(elements, opens[pos][j])
		}
		if pos < n {
			ins := body.InstructionAt(pos)
			elements = append(elements, Element{Kind: ElemInstruction, Instruction: ins, Label: ins.Label})
		}
	}
	return elements, result.ErrorOrNil()
}
