// Package language maps file extensions to canonical language tags.
//
// Classification is a pure lookup: the extension (case-insensitive) either
// appears in the table or the file is tagged [Unknown]. No file content is
// ever inspected.
package language
