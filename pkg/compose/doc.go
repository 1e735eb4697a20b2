// Package compose assembles joinery panels into a carcase box or a drawer.
//
// Composers call joinery.Build for each panel and place the result; they
// never touch geometry directly. A composed plan has its origin at the
// outer front-left-bottom corner of the object.
package compose
