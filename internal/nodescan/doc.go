// Package nodescan implements the small fixed-width byte search used
// by a node16 body to find or place a child among its up-to-16
// sign-flipped keys. The reference implementation this package
// descends from used SSE compare instructions for this; scan_swar.go
// reproduces the same result with portable word-parallel arithmetic
// on architectures where that pays off, and scan_generic.go falls
// back to a scalar loop everywhere else, mirroring the amd64/generic
// split used elsewhere in this ecosystem for lookup fast paths.
package nodescan
