package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-roomir/dsp/buffer"
)

func ExampleBuffer() {
	b := buffer.New(2)
	b.GrowTo(6)
	b.Add(1, 0.5)
	b.Add(3, -0.25)

	fmt.Println(b.Samples())
	fmt.Println(buffer.TrimTrailing(b.Copy(), 1e-5))

	// Output:
	// [0 0.5 0 -0.25 0 0]
	// [0 0.5 0 -0.25]
}
