// assets/embed.go
//
// Embedded default content and database migrations.
//   - words.txt:     candidate target words, one per line.
//   - farewells.txt: farewell templates, one per line.
//   - items.json:    ordered item records (sacrifice order).
//   - sql/*.sql:     schema migrations, applied in lexical order.
package assets

import (
	"bufio"
	"embed"
	"io"
	"io/fs"
	"strings"
)

//go:embed words.txt farewells.txt items.json sql/*.sql
var FS embed.FS

// ReadLines returns the non-blank, non-comment lines of r, trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// WordList returns the embedded word list as written (not normalised).
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// FarewellList returns the embedded farewell templates.
func FarewellList() ([]string, error) {
	return readLines("farewells.txt")
}

// ItemsJSON returns the raw embedded item table.
func ItemsJSON() ([]byte, error) {
	return FS.ReadFile("items.json")
}

// Migrations exposes the embedded sql directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// "sql" is embedded at build time; Sub only fails on an invalid name.
		panic(err)
	}
	return sub
}
