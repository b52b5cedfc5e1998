package pattern

import (
	"math/rand"

	"github.com/aquilax/go-perlin"

	"deltalife/src/universe"
)

//Perlin noise parameters
const (
	noiseAlpha = 2.
	noiseBeta  = 2.
	noiseN     = 3
	noiseScale = 0.15 //noise coordinates per cell
)

//Random returns cells of the width x height grid, each is alive with the density probability
func Random(width int, height int, seed int64, density float64) []universe.Cell {
	r := rand.New(rand.NewSource(seed))
	var res []universe.Cell
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if r.Float64() < density {
				res = append(res, universe.Cell{Row: row, Column: col})
			}
		}
	}
	return res
}

//Noise returns the cells where the 2D Perlin noise is above the threshold.
//The noise is in about [-1, 1], threshold 0 fills roughly half of the grid with smooth blobs.
func Noise(width int, height int, seed int64, threshold float64) []universe.Cell {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseN, seed)
	var res []universe.Cell
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if p.Noise2D(float64(col)*noiseScale, float64(row)*noiseScale) > threshold {
				res = append(res, universe.Cell{Row: row, Column: col})
			}
		}
	}
	return res
}
