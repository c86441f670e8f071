package scale_test

import (
	"fmt"

	"github.com/plotgrid/plotgrid/pkg/scale"
)

func ExampleRegistry() {
	r := scale.New()
	_ = r.Define("x", scale.Def{Horizontal: true})
	_ = r.Define("y", scale.Def{Distribution: scale.Log})
	_ = r.Build()

	// Range changes are queued and land together on Commit.
	_ = r.SetRange("x", 0, 100)
	_ = r.SetRange("y", 1, 1000)
	changed, _ := r.Commit()
	fmt.Println("changed:", changed)

	x, _ := r.Get("x")
	f, _ := x.Fraction(25)
	fmt.Println("fraction:", f)
	// Output:
	// changed: [x y]
	// fraction: 0.25
}

func ExampleRegistry_derivedScale() {
	r := scale.New()
	_ = r.Define("volume", scale.Def{})
	_ = r.Define("volume-right", scale.Def{Parent: "volume"})
	_ = r.Build()

	// The derived scale tracks its parent's range through commits.
	_ = r.SetRange("volume", 0, 5000)
	_, _ = r.Commit()

	d, _ := r.Get("volume-right")
	min, max, _ := d.Bounds()
	fmt.Printf("derived range: [%v, %v]\n", min, max)
	// Output:
	// derived range: [0, 5000]
}
