package topology_test

import (
	"fmt"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// Example builds a box and confirms its Euler characteristic: a
// genus-0 closed solid satisfies V - E + F = 2.
func Example() {
	b, err := topology.NewBox(nil, gmath.Vec3{}, 2, 3, 4)
	if err != nil {
		panic(err)
	}
	if err := topology.CheckInvariants(b); err != nil {
		panic(err)
	}

	v, e, f, _ := b.Counts()
	fmt.Println(v - e + f)
	// Output:
	// 2
}
