// Package hexdump converts the text of a memory dump into decimal values.
//
// The pipeline is Extract -> StripAddress -> Assemble -> Render. Every stage is
// a pure function over its input; errors are *Error values tagged with a Kind.
package hexdump
