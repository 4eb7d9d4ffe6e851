package utils

import (
	"math"
	"math/rand"
)

// RandomInRadius возвращает равномерно распределённую точку в круге радиуса radius вокруг (x, z).
// sqrt от случайного числа нужен, чтобы точки не скапливались у центра.
func RandomInRadius(rng *rand.Rand, x, z, radius float32) (float32, float32) {
	if radius <= 0 {
		return x, z
	}
	angle := rng.Float64() * 2 * math.Pi
	dist := float64(radius) * math.Sqrt(rng.Float64())
	return x + float32(math.Cos(angle)*dist), z + float32(math.Sin(angle)*dist)
}
