package universe

import (
	"math/rand"
	"testing"
)

const (
	benchWidth  = 200
	benchHeight = 200
)

var benchSample = []Cell{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}

func universeTick(u *Universe, seed []Cell, b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		u.Seed(seed)
		b.StartTimer()
		u.Tick()
	}
}

func Benchmark_Tick(b *testing.B) {
	for _, e := range allEngines {
		b.Run(e.String(), func(b *testing.B) {
			universeTick(newEngine(e, benchWidth, benchHeight), benchSample, b)
		})
	}
}

func Benchmark_TickDense(b *testing.B) {
	seed := randomCells(rand.New(rand.NewSource(1)), benchWidth, benchHeight, 0.3)
	for _, e := range allEngines {
		b.Run(e.String(), func(b *testing.B) {
			universeTick(newEngine(e, benchWidth, benchHeight), seed, b)
		})
	}
}
