package arbor_test

import (
	"fmt"
	"log"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

func ExampleEngine_Process() {
	eng := arbor.New()
	err := eng.LoadProgram(`
step: 1
angle: 45
axiom: F
F -> F[+F]F
`)
	if err != nil {
		log.Fatal(err)
	}

	symbols, err := eng.Expand(2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(domain.SequenceString(symbols))

	var branches []domain.Branch
	if err := eng.Process(2, &branches); err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(branches), "branches")
	fmt.Printf("trunk ends at (%g, %g, %g)\n",
		branches[len(branches)-1].End.X,
		branches[len(branches)-1].End.Y,
		branches[len(branches)-1].End.Z)

	// Output:
	// F[+F]F[+F[+F]F]F[+F]F
	// 9 branches
	// trunk ends at (0, 4, 0)
}

func ExampleEngine_LoadProgram_error() {
	eng := arbor.New()
	err := eng.LoadProgram("axiom: F\n -> FF")
	fmt.Println(err)

	// Output:
	// grammar line 2: rule has no predecessor symbol ("-> FF")
}
