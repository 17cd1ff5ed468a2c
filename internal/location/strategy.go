package location

// StrategyKind selects the template used to render a location.
type StrategyKind int

const (
	StrategyProxy StrategyKind = iota + 1
	StrategyAlias
	StrategyStubStatus
	StrategyDirectory
)

// String returns the template name for the kind.
func (k StrategyKind) String() string {
	switch k {
	case StrategyProxy:
		return "proxy"
	case StrategyAlias:
		return "alias"
	case StrategyStubStatus:
		return "stub_status"
	case StrategyDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Strategy is the selected content strategy and the source it serves:
// the upstream for proxy, the path for alias and directory, empty for
// stub_status.
type Strategy struct {
	Kind   StrategyKind
	Source string
}

// Select picks the content strategy for spec. The checks run in a fixed
// order and the first match wins:
//
//	Proxy         -> proxy
//	AliasRoot     -> alias
//	LocationAlias -> alias
//	StubStatus    -> stub_status
//	otherwise     -> directory (WwwRoot)
//
// Select does not validate; a spec with several sources set still gets
// the strategy of the earliest one.
func Select(spec Spec) Strategy {
	switch {
	case spec.Proxy != "":
		return Strategy{Kind: StrategyProxy, Source: spec.Proxy}
	case spec.AliasRoot != "":
		return Strategy{Kind: StrategyAlias, Source: spec.AliasRoot}
	case spec.LocationAlias != "":
		return Strategy{Kind: StrategyAlias, Source: spec.LocationAlias}
	case spec.StubStatus:
		return Strategy{Kind: StrategyStubStatus}
	default:
		return Strategy{Kind: StrategyDirectory, Source: spec.WwwRoot}
	}
}
