// Package treesitter is a syntax.Provider backed by
// github.com/tree-sitter/go-tree-sitter, demonstrating the provider
// contract against one bundled grammar
// (github.com/tree-sitter-grammars/tree-sitter-zig). Grounded on
// standardbeagle-lci/internal/parser's setupZig/parser.go, which builds
// a *tree_sitter.Query against this same grammar and walks its capture
// list; this provider reuses that query shape but maps captures to
// display property spans instead of symbol records.
package treesitter

import (
	"fmt"

	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/inkwell-editor/inkwell/display"
)

// zigQuery highlights function and struct/union declarations — the
// same capture shape standardbeagle-lci's setupZig uses for symbol
// extraction, repurposed here for highlighting.
const zigQuery = `
(function_declaration (identifier) @function.name) @function
(variable_declaration
  (identifier) @struct.name
  (struct_declaration) @struct)
(variable_declaration
  (identifier) @struct.name
  (union_declaration) @struct)
`

// captureColors assigns a display color per capture name. Captures not
// listed produce no span.
var captureColors = map[string]struct {
	id display.PropertyID
	fg display.Color
}{
	"function":      {display.PropertyUserBase + 0, display.Color{R: 0x8a, G: 0xbe, B: 0xff, A: 0xff}},
	"function.name": {display.PropertyUserBase + 1, display.Color{R: 0xd0, G: 0xd0, B: 0xff, A: 0xff}},
	"struct":        {display.PropertyUserBase + 2, display.Color{R: 0xff, G: 0xcf, B: 0x8a, A: 0xff}},
	"struct.name":   {display.PropertyUserBase + 3, display.Color{R: 0xff, G: 0xe8, B: 0xc0, A: 0xff}},
}

// Provider wraps one compiled tree-sitter language and query. It is
// safe to share across goroutines only if the caller serializes calls
// to Annotate, matching tree_sitter.Parser's own documented usage.
type Provider struct {
	parser *tree_sitter.Parser
	query  *tree_sitter.Query
}

// NewZigProvider builds the Zig demonstration provider.
func NewZigProvider() (*Provider, error) {
	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(tree_sitter_zig.Language())
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("treesitter: set zig language: %w", err)
	}
	query, err := tree_sitter.NewQuery(language, zigQuery)
	if err != nil {
		return nil, fmt.Errorf("treesitter: compile zig query: %w", err)
	}
	return &Provider{parser: parser, query: query}, nil
}

// Language implements syntax.Provider.
func (p *Provider) Language() string { return "zig" }

// Annotate implements syntax.Provider: it parses src and returns one
// PropertySpan per recognized capture, in the order tree-sitter's query
// cursor yields matches.
func (p *Provider) Annotate(src []byte) ([]display.PropertySpan, error) {
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("treesitter: parse failed")
	}
	defer tree.Close()

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	names := p.query.CaptureNames()
	matches := cursor.Matches(p.query, tree.RootNode(), src)

	var spans []display.PropertySpan
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, cap := range match.Captures {
			name := names[cap.Index]
			style, ok := captureColors[name]
			if !ok {
				continue
			}
			start := int(cap.Node.StartByte())
			end := int(cap.Node.EndByte())
			spans = append(spans, display.PropertySpan{
				Offset: start,
				Length: end - start,
				FG:     style.fg,
				ID:     style.id,
			})
		}
	}
	return spans, nil
}

// Close releases the parser. Queries and parsers in go-tree-sitter wrap
// C resources; callers constructing a long-lived Provider should defer
// Close at shutdown.
func (p *Provider) Close() {
	p.parser.Close()
	p.query.Close()
}
