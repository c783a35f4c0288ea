package mask_test

import (
	"fmt"

	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/mask"
)

func ExampleMask_Frontier() {
	// The east frontier is the column of cells with open space to the east
	m := mask.MustParse(
		"###.",
		"###.",
		"....",
	)
	fmt.Println(m.Frontier(geom.East))
	// Output:
	// ..#.
	// ..#.
	// ....
}

func ExampleMask_Corners() {
	m := mask.MustParse(
		"###",
		"###",
	)
	fmt.Println(m.Corners(geom.North))
	// Output:
	// ..#
	// ...
}

func ExampleMask_Union() {
	a := mask.MustParse("#..", "...")
	b := mask.MustParse("...", "..#")
	u, err := a.Union(b)
	if err != nil {
		panic(err)
	}
	fmt.Println(u)
	fmt.Println("cells:", u.Count())
	// Output:
	// #..
	// ..#
	// cells: 2
}

func ExampleMask_CollidesAt() {
	floor := mask.MustParse(
		"##..",
		"##..",
	)
	block := mask.MustParse("##")
	fmt.Println(floor.CollidesAt(geom.Pt(0, 1), block))
	fmt.Println(floor.CollidesAt(geom.Pt(1, 2), block))
	// Output:
	// true
	// false
}
