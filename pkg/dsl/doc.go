/*
Package dsl parses program sources and offers a fluent builder for
constructing programs in Go code.

The textual format is the primary interface: Parse turns a source string
into a validated domain.Program. The Builder covers the cases where a
program is generated rather than written, such as tests and tooling, with
a type-safe API instead of string assembly:

	p, err := dsl.NewBuilder("increment").
		Blank('.').
		Tape("111", 0).
		State("scan").
		On('1').Right().To("scan").
		On('_').Write('1').To("halt").
		Build()

Both paths run the same analysis, so a Program obtained from either is
guaranteed to satisfy the machine's invariants.
*/
package dsl
