// Package naming turns pasted free-form text into target folder names.
//
// Extraction is line-based: every line that contains a run of word
// characters contributes exactly one identifier (the first such run).
// ApplyBrand then appends the optional brand suffix. Both functions are
// pure and never fail.
package naming
