// Package match selects the catalog track that corresponds to a search
// query or a local file name.
//
// Two ladders are provided. FindBest serves explicit text search
// (exact → normalized → substring), ByFilename serves bulk reconciliation
// (numeric filename prefix → normalized title containment). Both return
// "no match" as a nil track rather than an error; the caller decides what
// an unmatched file means.
package match
