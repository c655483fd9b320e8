// Package commit binds the template language to version-control
// commit records. It loads a commit log from a YAML file into an
// in-memory repository view and exposes the keyword resolver that
// maps template identifiers to commit fields.
package commit
