// Package fixtures loads theme and page-override documents from YAML or JSON
// files, validates them and finds them on disk.
//
// A file holds either a bare theme mapping, or any of these top-level keys:
//
//	themes: [ ...theme mappings... ]
//	theme:  { ...one theme... }
//	page:   { ...page overrides... }
package fixtures

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/phil426/podabio-sub000/internal/tokens"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// File is one decoded fixture document.
type File struct {
	Path   string
	Themes []*Theme
	Page   *Page
}

// Theme is a decoded theme plus the YAML node it came from, for positions.
type Theme struct {
	tokens.Theme
	Index int // position in the file's theme list
	node  *yaml.Node
}

// Position returns the 1-based line and column of the key at path, or of the
// deepest existing ancestor when the path is absent.
func (t *Theme) Position(path ...string) (int, int) {
	if t == nil {
		return 0, 0
	}
	return locate(t.node, path...)
}

// Page is decoded page overrides plus their YAML node.
type Page struct {
	tokens.PageOverrides
	node *yaml.Node
}

// Position works like Theme.Position.
func (p *Page) Position(path ...string) (int, int) {
	if p == nil {
		return 0, 0
	}
	return locate(p.node, path...)
}

// LoadFile reads and decodes the fixture at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes fixture data. path is only used for error messages.
func Parse(path string, data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewParseError(path, extractLine(err), err)
	}

	file := &File{Path: path}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return file, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, NewParseError(path, root.Line, errors.New("top level must be a mapping"))
	}

	themes, hasThemes := lookup(root, "themes")
	single, hasTheme := lookup(root, "theme")
	page, hasPage := lookup(root, "page")

	if !hasThemes && !hasTheme && !hasPage {
		t, err := decodeTheme(path, root, 0)
		if err != nil {
			return nil, err
		}
		file.Themes = append(file.Themes, t)
		return file, nil
	}

	if hasThemes {
		if themes.Kind != yaml.SequenceNode {
			return nil, NewParseError(path, themes.Line, errors.New("themes must be a list"))
		}
		for i, n := range themes.Content {
			t, err := decodeTheme(path, n, i)
			if err != nil {
				return nil, err
			}
			file.Themes = append(file.Themes, t)
		}
	}

	if hasTheme {
		t, err := decodeTheme(path, single, len(file.Themes))
		if err != nil {
			return nil, err
		}
		file.Themes = append(file.Themes, t)
	}

	if hasPage {
		if page.Kind != yaml.MappingNode {
			return nil, NewParseError(path, page.Line, errors.New("page must be a mapping"))
		}
		p := &Page{node: page}
		if err := page.Decode(&p.PageOverrides); err != nil {
			return nil, NewParseError(path, lineOf(err, page.Line), err)
		}
		file.Page = p
	}

	return file, nil
}

func decodeTheme(path string, n *yaml.Node, index int) (*Theme, error) {
	if n.Kind != yaml.MappingNode {
		return nil, NewParseError(path, n.Line, fmt.Errorf("theme %d must be a mapping", index))
	}
	t := &Theme{Index: index, node: n}
	if err := n.Decode(&t.Theme); err != nil {
		return nil, NewParseError(path, lineOf(err, n.Line), err)
	}
	return t, nil
}

// lookup returns the value node for key in a mapping node.
func lookup(n *yaml.Node, key string) (*yaml.Node, bool) {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1], true
		}
	}
	return nil, false
}

func locate(n *yaml.Node, path ...string) (int, int) {
	if n == nil {
		return 0, 0
	}
	line, col := n.Line, n.Column
	cur := n
	for _, key := range path {
		if cur.Kind != yaml.MappingNode {
			break
		}
		found := false
		for i := 0; i+1 < len(cur.Content); i += 2 {
			if cur.Content[i].Value == key {
				line, col = cur.Content[i].Line, cur.Content[i].Column
				cur = cur.Content[i+1]
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return line, col
}

func lineOf(err error, fallback int) int {
	if line := extractLine(err); line > 0 {
		return line
	}
	return fallback
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
