package effects_test

import (
	"fmt"
	"log"

	"github.com/cwbudde/algo-pedalboard/dsp/effects"
)

func ExampleClipper() {
	c := effects.NewClipper()
	if err := c.SetThreshold(0.5); err != nil {
		log.Fatal(err)
	}

	buf := []float64{1, -1, 0.25}
	c.ProcessInPlace(buf)
	fmt.Printf("%.2f %.2f %.2f\n", buf[0], buf[1], buf[2])
	// Output:
	// 0.50 -0.50 0.25
}

func ExampleDelay() {
	d, err := effects.NewDelay(1000)
	if err != nil {
		log.Fatal(err)
	}
	if err := d.SetTime(0.004); err != nil {
		log.Fatal(err)
	}
	if err := d.SetFeedback(0); err != nil {
		log.Fatal(err)
	}
	if err := d.SetMix(1); err != nil {
		log.Fatal(err)
	}

	buf := make([]float64, 8)
	buf[0] = 1
	d.ProcessInPlace(buf)
	fmt.Printf("%.0f\n", buf)
	// Output:
	// [0 0 0 0 1 0 0 0]
}
