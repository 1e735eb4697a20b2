// Package joinery computes finger-jointed panels for drawer boxes.
//
// All geometry is planned, never built: a panel is a base box plus the cut
// features a solid-modeling backend must subtract. Every function takes the
// joinery constants explicitly as a Params value; there is no package state.
//
// Two phases of finger joint mate along an edge. A slot-phase edge cuts its
// first slot at the margin. A clearance-phase edge clears the margin
// entirely, then cuts slots one finger width later, so its tabs land in the
// slot-phase edge's slots.
package joinery
