package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-roomir/dsp/conv"
)

func ExampleConvolve() {
	dry := []float64{1, 0, 0, 0.5}
	ir := []float64{1, 0, -0.5}

	wet, err := conv.Convolve(dry, ir)
	if err != nil {
		panic(err)
	}
	fmt.Println(wet)
	// Output: [1 0 -0.5 0.5 0 -0.25]
}
