// Package rew provides the composition engine of the rew multi-tool as an
// embeddable library.
//
// rew processes byte-delimited text records. Its x command evaluates a
// small pattern language whose expressions run as parallel child-process
// pipelines sharing one stdin stream, joined line-by-line into rows:
//
//	err := rew.Run(ctx, `{seq}. {upper}`, rew.Options{
//	    Stdin:  os.Stdin,
//	    Stdout: os.Stdout,
//	})
//
// # Patterns
//
// A pattern mixes literal text with {...} expressions. Inside an
// expression, '|' chains commands into a pipeline, ':' right after the
// brace asserts the pipeline does not read stdin, '#' passes the rest of
// the expression verbatim to the shell, and '!' forces an external
// program instead of a built-in.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling; ExitCode
// maps any of them to the conventional process exit code:
//   - [ParseError]: pattern syntax errors (exit code 2)
//   - [ExitError]: forwarded child exit codes
//   - [SpawnError] and other engine errors: I/O, spawn, wait (exit code 1)
package rew
