// Package types is the canonicalizing type store at the core of the IR.
//
// # Model
//
// A Context owns an arena of type nodes addressed by stable TypeIDs and one
// uniquing table per composite kind. Constructors hand back the single
// canonical node per distinct structural shape, where structural keys compare
// contained subtypes by identity, never by recursive shape — that is what
// keeps uniquing well-defined when the containment graph has cycles.
//
// # Abstract types
//
// A type whose shape is not yet final (because it transitively contains an
// OpaqueType placeholder) is tracked by identity only; it joins its uniquing
// table the moment it becomes fully concrete. RefineAbstractTypeTo resolves
// a placeholder in place: every containment edge subscribed to it is
// repointed, each touched container re-derives its abstractness, and
// newly-concrete composites are inserted under their final key or collapsed
// into a pre-existing duplicate, cascading synchronously until the graph is
// quiescent. Dead IDs forward to their survivor via Context.Canonical.
//
// # Ownership and concurrency
//
// Nodes live as long as their Context; there is no garbage collection and no
// merging of independently built contexts. A Context is single-threaded:
// callers that need sharing must serialize access externally, since one
// refinement can touch arbitrarily many tables transitively.
package types
