// Package mix provides audio mixing and crossfading operations.
package mix

// DryWet performs a linear dry/wet mix between two signals.
// amount: 0.0 = 100% dry, 1.0 = 100% wet
func DryWet(dry, wet, amount float32) float32 {
	return dry*(1.0-amount) + wet*amount
}

// DryWetBuffer performs in-place dry/wet mixing on audio buffers.
// amount: 0.0 = 100% dry, 1.0 = 100% wet
func DryWetBuffer(dry, wet []float32, amount float32) {
	dryGain := 1.0 - amount

	length := len(dry)
	if len(wet) < length {
		length = len(wet)
	}

	for i := 0; i < length; i++ {
		dry[i] = dry[i]*dryGain + wet[i]*amount
	}
}

// Sum adds src into dst, frame by frame.
func Sum(dst, src []float32) {
	length := len(dst)
	if len(src) < length {
		length = len(src)
	}
	for i := 0; i < length; i++ {
		dst[i] += src[i]
	}
}
