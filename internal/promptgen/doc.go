// Package promptgen derives custom review templates from an existing
// codebase. Analyze scans a project's source for naming conventions,
// frameworks, and idioms; Generate renders the findings into a prompt
// template compatible with the reviewer's placeholder substitution.
package promptgen
