/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing arbor
grammars.

It allows developers to define rewriting systems using a fluent builder pattern instead of
grammar text. This is particularly useful for generated grammars, unit testing, and leveraging
IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/dsl"
	)

	func main() {
		b := dsl.New().Angle(25.7).Axiom("X")

		b.Rule('X').To("F[+X]F[-X]+X")
		b.Rule('F').To("FF")

		prog, err := b.Build()
		if err != nil {
			panic(err)
		}

		eng := arbor.New()
		_ = eng.SetProgram(prog)
	}
*/
package dsl
