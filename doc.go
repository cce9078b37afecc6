/*
Package arbor procedurally generates branching 3D line geometry from L-system grammars.

A compact rewriting grammar is expanded for a number of iterations and the resulting symbol
sequence is walked by a turtle in 3D space. Every draw-forward symbol emits a Branch (a line
segment); consumers thicken the branches into tubes, curves or meshes.

# Grammar

Grammars are line oriented:

	# a 3D bush
	step: 1
	angle: 22.5
	axiom: A
	A -> [&FA]////[&FA]////[&FA]
	F -> S/////F
	F -> F : 0.5

Rules sharing a predecessor are stochastic alternatives; the optional ": weight" suffix biases
the draw. A symbol may carry a parameter, F(2.5) or +(90), replacing the step or angle for that
occurrence only.

# Alphabet

	F G    draw forward          f g    move forward
	+ -    yaw left / right      ^ &    pitch up / down
	\ /    roll left / right     [ ]    push / pop state

Any other symbol is kept through rewriting and ignored by the turtle.

# Usage

	eng := arbor.New(arbor.WithSeed(42))
	if err := eng.LoadProgram(text); err != nil {
		log.Fatal(err)
	}
	eng.SetDefaultAngle(30)

	var branches []domain.Branch
	if err := eng.Process(4, &branches); err != nil {
		log.Fatal(err)
	}

Process appends to the slice it is given. Output size grows exponentially with the iteration
count: callers bound it (typically to domain.PracticalIterations or less).
*/
package arbor
