// Package jack implements a tokenizer and compilation engine for the
// Jack language, producing the toolchain's XML renditions of token
// streams and parse trees.
package jack
