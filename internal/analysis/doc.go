// Package analysis characterises the periodic motion of a swept mechanism.
//
//   - [Harmonics]: Fourier decomposition of one revolution of a quantity
//   - [NewPortrait]: phase portrait of two swept quantities
//
// A sweep covers exactly one crank revolution at evenly spaced angles, so
// order k of the decomposition is the k-th multiple of the crank frequency:
//
//	_, r6 := res.Series(sweep.SliderPosition)
//	hs, err := analysis.Harmonics(r6, 5)
package analysis
