package processor_test

import (
	"fmt"
	"log"

	"github.com/cwbudde/algo-pedalboard/processor"
)

func ExampleNames() {
	for _, name := range processor.Names() {
		fmt.Println(name)
	}
	// Output:
	// Bitcrush
	// Chorus
	// Clipping
	// Compressor
	// Delay
	// Distortion
	// Gain
	// HighPass
	// LadderFilter
	// Limiter
	// LowPass
	// Phaser
	// Reverb
}

func ExampleApply() {
	p, err := processor.New("Clipping")
	if err != nil {
		log.Fatal(err)
	}
	p.SetParameter(0, 0) // lowest threshold, 0.1

	data := [][]float32{{1, -1, 0.05}}
	if err := processor.Apply(p, data, 48000, 512); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f %.2f %.2f\n", data[0][0], data[0][1], data[0][2])
	// Output:
	// 0.10 -0.10 0.05
}
