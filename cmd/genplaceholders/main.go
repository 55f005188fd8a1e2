package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/framekit/internal/audio"
	"chosenoffset.com/framekit/internal/sprite"
)

func main() {
	out := flag.String("out", "data/atlases", "atlas output directory")
	sound := flag.String("sound", "data/sounds/pickup.wav", "pickup sound output path")
	flag.Parse()

	fmt.Println("framekit placeholder sprite generator")
	fmt.Println("=====================================")

	path, err := sprite.WriteDemoAssets(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", path)

	if err := audio.WriteChime(*sound, audio.CoinChime, 0.5, 44100); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *sound)
	fmt.Println("Run framekit-demo to see the placeholders in action.")
}
