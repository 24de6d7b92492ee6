package utils

import "math"

// Round arredonda value para a quantidade de casas decimais informada,
// com empates afastando-se de zero.
func Round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
