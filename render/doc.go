// Package render writes jwtkit results to a terminal or as JSON.
//
// Colors come from fatih/color and can be forced on or off with
// WithColor; tests normally pass WithColor(false).
package render
