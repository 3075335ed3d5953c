// Package assets holds files compiled into the server binary.
package assets

import (
	"embed"
	"io/fs"
)

// WordsFile is the default word list: one "word|definition" per line,
// '#' starts a comment.
const WordsFile = "words.txt"

//go:embed words.txt
var files embed.FS

// OpenWords opens the embedded default word list.
func OpenWords() (fs.File, error) {
	return files.Open(WordsFile)
}
