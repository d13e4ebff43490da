// Package sentinel provides an immutable error type for sentinel error declarations.
//
// Sentinel errors declared with errors.New are mutable variables that consumers
// can reassign. Error is a string-based type that can be declared as a const
// while remaining compatible with errors.Is through wrapped chains.
//
// localdbenv classifies failures by kind (precondition, invalid argument,
// connectivity, tool failure, timeout) and by the specific condition that
// triggered them. Of joins the two so a single returned error matches both.
package sentinel
