package fonts

import (
	"io/fs"
	"os"
	"path"
	"strings"
)

// Dir is the font directory, relative to the working directory.
const Dir = "assets/fonts"

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// Scan returns the slash-separated paths of every font file in fsys, sorted as fs.WalkDir visits them.
// A missing root is an empty result.
func Scan(fsys fs.FS) ([]string, error) {
	var out []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." && os.IsNotExist(err) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		for _, e := range Exts {
			if ext == e {
				out = append(out, p)
				break
			}
		}
		return nil
	})
	return out, err
}

// normalize lowercases and drops spaces, dashes and underscores so "Google Sans" matches "Google_Sans".
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Find returns the path in fsys of the font whose path contains family. When several match, a
// "Regular" face wins; otherwise the first match in walk order.
func Find(fsys fs.FS, family string) (string, error) {
	want := normalize(family)
	if want == "" {
		return "", fs.ErrNotExist
	}
	list, err := Scan(fsys)
	if err != nil {
		return "", err
	}
	var match []string
	for _, p := range list {
		if strings.Contains(normalize(p), want) {
			match = append(match, p)
		}
	}
	if len(match) == 0 {
		return "", fs.ErrNotExist
	}
	for _, p := range match {
		if strings.Contains(strings.ToLower(p), "regular") {
			return p, nil
		}
	}
	return match[0], nil
}
