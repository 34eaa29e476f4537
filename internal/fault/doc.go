// Package fault defines the uniform error value of the request pipeline and
// the contract by which pipeline stages hand failures to the terminal error
// funnel.
//
// A stage that detects a failure never writes an error body itself. It
// constructs a [Fault] (or passes any error) to [Forward], which delivers it
// to the [Sink] installed in the request context by the funnel.
package fault
