/*
Package domain contains the core domain models of the arbor grammar engine.

It defines the rewriting alphabet, the parsed grammar program and the line segments produced by
the turtle. This package is kept pure and free of I/O, following the Hexagonal Architecture used
across the module: parsing lives in internal/compiler, rewriting and interpretation in
internal/runtime.

# Key Entities

  - Symbol: One alphabet character, optionally carrying a numeric parameter (e.g. F(2.5)).
  - Kind: The closed set of turtle effects a Symbol can trigger.
  - Program: Axiom, default step/angle and the weighted production rules.
  - Branch: One emitted 3D segment (start, end).
*/
package domain
