package domain

const (
	// DefaultBlank is the blank symbol used when a program declares none.
	DefaultBlank = ' '

	// WildcardBlank is the reserved source symbol meaning "whatever the
	// program's blank symbol is". It is resolved at parse time inside tape
	// declarations and at run time inside read/write positions.
	WildcardBlank = '_'

	// HaltState is always a legal transition target, even when no rules
	// entry declares it.
	HaltState = "halt"

	// MaxProgramSize caps the size of program source accepted by loaders.
	MaxProgramSize = 64 * 1024
)
