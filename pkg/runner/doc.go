/*
Package runner drives a machine interactively over an IO pair.

The Runner owns the command loop; presentation is delegated to an
IOHandler strategy, so the same loop serves a human at a terminal (text
mode, optionally with an ANSI renderer) and another process speaking
line-delimited JSON. The CLI's debug command is a thin wrapper around
this package.
*/
package runner
