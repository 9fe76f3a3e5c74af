// Package layout computes the initial, layered placement of classified
// nodes.
//
// The five main-flow categories (entry, frontend, backend, services, data)
// each get a horizontal band at a fixed y, with nodes centred and spread
// left to right. Config, utilities and tests are stacked in side columns at
// the canvas margins. Everything else goes into a square-ish grid below the
// bands.
//
// The result is the starting point for force relaxation (package force).
package layout
