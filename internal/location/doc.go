// Package location compiles one nginx location description into the ordered
// configuration fragments that an assembler later concatenates into a
// complete virtual host file.
//
// The package holds all of the decision logic and nothing else: it performs
// no I/O and never logs. Rendering text and persisting fragments are
// delegated to a Renderer and to the caller respectively.
//
// # Pipeline
//
//	Validate(spec)      exclusivity of proxy / alias root / www root
//	Select(spec)        one Strategy, first match wins
//	Renderer.Render     text for the strategy (external)
//	FragmentIDs(spec)   zero, one or two ids: plain and/or "-secure"
//
// Compiler.Compile runs the four steps and pairs every id with the same
// rendered text.
//
// # Fragment Identifiers
//
// Ids render as "{vhost}-{priority}-{name}" with "-secure" appended for the
// secure-transport fragment, e.g.
//
//	site-500-root
//	site-500-root-secure
//
// The assembler sorts these strings lexicographically, so the plain
// fragment of a location sorts before its secure twin, sharing its prefix.
// Another location whose name extends the first (root-a) may sort between
// them.
//
// # Legacy Sources
//
// LocationAlias and StubStatus are not members of the exclusivity group
// checked by Validate, yet Select honours them. A spec that sets only one of
// them fails validation with a missing content source; a spec that sets
// one of them next to a www root validates and renders as alias or
// stub_status. This asymmetry is kept deliberately so existing manifests
// compile unchanged.
//
// # Concurrency
//
// Validate, Select, FragmentIDs and Compile read only their arguments, so
// they are safe to call from many goroutines. CompileAll does exactly that
// for a batch of specs.
package location
