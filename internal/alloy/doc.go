// Package alloy models ternary Al-Fe-Ni compositions and enumerates the
// fixed 21-point composition grid the study sweeps over: the three pure
// elements, nine binary edge points, and nine interior points.
package alloy
