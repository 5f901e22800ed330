// Package version resolves a version request against the tags of a
// repository.
//
// Tags may be namespaced as {prefix}/{version}. The version part is the text
// after the last "/" with one leading "v" removed, parsed as a semantic
// version. Tags whose version part does not parse are raw tags: they take
// part in no "latest" or range computation and are reachable only by exact
// name.
//
// Resolution is a pure function of the tag set. When two tags carry the same
// version (for example "a/1.0.0" and "b/1.0.0", or "1.0.0" and "v1.0.0") the
// lexicographically last tag name wins.
package version
