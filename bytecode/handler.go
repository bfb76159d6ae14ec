package bytecode

import "fmt"

// HandlerKind is the kind of handler attached to a protected range.
type HandlerKind uint8

const (
	HandlerCatch HandlerKind = iota
	HandlerFilter
	HandlerFinally
	HandlerFault
)

func (k HandlerKind) String() string {
	switch k {
	case HandlerCatch:
		return "catch"
	case HandlerFilter:
		return "filter"
	case HandlerFinally:
		return "finally"
	case HandlerFault:
		return "fault"
	default:
		return "unknown"
	}
}

// ExceptionRegion describes one try/handler pair. Boundaries are instruction
// labels; every End label is exclusive and names the first instruction after
// the range. Several regions may share one try range, one per handler.
type ExceptionRegion struct {
	Kind         HandlerKind
	TryStart     string
	TryEnd       string
	FilterStart  string   // filter regions only
	HandlerStart string   // also the end of the filter block
	HandlerEnd   string
	CatchType    *TypeRef // catch regions only
}

func (r ExceptionRegion) String() string {
	switch r.Kind {
	case HandlerCatch:
		return fmt.Sprintf(".try %s to %s catch %s handler %s to %s",
			r.TryStart, r.TryEnd, r.CatchType, r.HandlerStart, r.HandlerEnd)
	case HandlerFilter:
		return fmt.Sprintf(".try %s to %s filter %s handler %s to %s",
			r.TryStart, r.TryEnd, r.FilterStart, r.HandlerStart, r.HandlerEnd)
	default:
		return fmt.Sprintf(".try %s to %s %s handler %s to %s",
			r.TryStart, r.TryEnd, r.Kind, r.HandlerStart, r.HandlerEnd)
	}
}
