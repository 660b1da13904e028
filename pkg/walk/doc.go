/*
Package walk implements the two directions of a transcript: a Builder that
asks a ports.Requester for answers and assembles a value, and a Displayer that
states an existing value to a ports.Responder.

Both sides follow the same choreography, so the responses recorded while
displaying a value can be fed back to a Builder to rebuild it.

Callers drive the walk with one method per shape (primitive, option, tuple,
sequence, map, struct, enum). Compound shapes take callbacks that walk their
children. Every walk must end with Close, which closes any scope left open by
a failed walk so the transport always sees balanced framing:

	b := walk.NewBuilder(ctx, transport)
	defer b.Close()
	n, err := b.Uint(32)

Scopes are either explicit (closed by the walker when the grouping ends) or
implicit (option, newtype and struct-field wrappers, closed the moment their
single child value completes).
*/
package walk
