package registry

// Classic grammars from "The Algorithmic Beauty of Plants" (Prusinkiewicz, Lindenmayer).
var builtin = []Preset{
	{
		Name:        "koch-curve",
		Description: "Quadratic Koch island edge",
		Iterations:  3,
		Grammar: `angle: 90
axiom: F
F -> F+F-F-F+F
`,
	},
	{
		Name:        "dragon",
		Description: "Heighway dragon curve",
		Iterations:  8,
		Grammar: `angle: 90
axiom: FX
X -> X+YF+
Y -> -FX-Y
`,
	},
	{
		Name:        "plant-a",
		Description: "Bracketed edge-rewriting plant (fig. 1.24a)",
		Iterations:  5,
		Grammar: `angle: 25.7
axiom: F
F -> F[+F]F[-F]F
`,
	},
	{
		Name:        "plant-e",
		Description: "Node-rewriting plant with apical X (fig. 1.24e)",
		Iterations:  7,
		Grammar: `angle: 25.7
axiom: X
X -> F[+X]F[-X]+X
F -> FF
`,
	},
	{
		Name:        "weed",
		Description: "Stochastic weed, three equally likely branchings (fig. 1.27)",
		Iterations:  5,
		Grammar: `angle: 25.7
axiom: F
F -> F[+F]F[-F]F : 1
F -> F[+F]F : 1
F -> F[-F]F : 1
`,
	},
	{
		Name:        "bush",
		Description: "Three-dimensional bush with rolled whorls (fig. 1.25)",
		Iterations:  5,
		Grammar: `angle: 22.5
axiom: A
A -> [&FA]/////[&FA]///////[&FA]
F -> S/////F
S -> F
`,
	},
}
