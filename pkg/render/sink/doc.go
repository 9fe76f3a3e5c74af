// Package sink provides [render.Surface] implementations.
//
//   - [Raster] draws into an RGBA image with fogleman/gg and encodes PNG.
//     Labels use the Go fonts and are rasterised at the zoomed size.
//   - [SVG] writes an SVG document with ajstarks/svgo. Glows become
//     Gaussian blur filters.
//   - [Cells] approximates the drawing on a terminal cell grid and renders
//     it with lipgloss styles. The explore command uses it for its canvas.
//
// All sinks measure text with the same Go font metrics, so label plates
// line up across formats.
package sink
