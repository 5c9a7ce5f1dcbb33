// Package hcl loads dashboard definitions from .hcl files and translates
// them into the format-agnostic dashboard model. Parsing and translation are
// kept separate so the rest of the application never touches HCL types.
package hcl
