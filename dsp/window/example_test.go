package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-roomir/dsp/window"
)

func ExampleFalling() {
	for _, v := range window.Falling(window.TypeHann, 4) {
		fmt.Printf("%.3f ", v)
	}
	fmt.Println()
	// Output: 0.854 0.500 0.146 0.000
}
