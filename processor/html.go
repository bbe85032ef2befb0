package processor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ZaguanLabs/ottolai"
)

// HTMLProcessor extracts Arabic-script text nodes from HTML and applies
// translations back in place. Latin-script nodes are left alone: in a mixed
// document only the Ottoman segments need resolving.
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates an HTML processor with the default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: ottolai.IgnoredTags,
	}
}

// NewHTMLProcessorWithIgnoredTags creates an HTML processor that skips the
// given tags instead of the defaults.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
	}
}

// parsedHTML holds the parsed document between Extract and Apply.
type parsedHTML struct {
	doc *goquery.Document
}

// Extract parses HTML and collects the Arabic-script text nodes, deduplicated
// by content hash. Ignored tags and elements marked data-no-translate are
// skipped whole.
func (p *HTMLProcessor) Extract(content string) (interface{}, []ottolai.TextNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, &ottolai.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	var nodes []ottolai.TextNode
	seenHashes := make(map[string]bool)

	p.walk(doc, func(n *html.Node, trimmed string) {
		if !ottolai.ContainsArabic(trimmed) {
			return
		}

		hash := ottolai.HashText(trimmed)
		if seenHashes[hash] {
			return
		}
		seenHashes[hash] = true

		node := ottolai.TextNode{
			ID:       fmt.Sprintf("node-%d", len(nodes)),
			Text:     trimmed,
			Hash:     hash,
			NodeType: "html_text",
			Metadata: map[string]string{
				"direction": ottolai.TextDirection(trimmed),
			},
		}
		if n.Parent != nil && n.Parent.Type == html.ElementNode {
			node.Metadata["parent_tag"] = n.Parent.Data
		}

		nodes = append(nodes, node)
	})

	return &parsedHTML{doc: doc}, nodes, nil
}

// Apply splices translations back into the document, keyed by content hash so
// duplicate text nodes all get the same translation. Elements whose text was
// replaced have any rtl direction flipped and are marked lang="tr", since the
// output is Latin-script Turkish.
func (p *HTMLProcessor) Apply(parsed interface{}, nodes []ottolai.TextNode, translations map[string]string) (string, error) {
	ph, ok := parsed.(*parsedHTML)
	if !ok {
		return "", &ottolai.ProcessorError{
			Message:     "invalid parsed content type",
			ContentType: "html",
		}
	}

	p.walk(ph.doc, func(n *html.Node, trimmed string) {
		translated, ok := translations[ottolai.HashText(trimmed)]
		if !ok {
			return
		}
		n.Data = preserveWhitespace(n.Data, translated)
		if n.Parent != nil && n.Parent.Type == html.ElementNode {
			retargetElement(n.Parent)
		}
	})

	out, err := ph.doc.Html()
	if err != nil {
		return "", &ottolai.ProcessorError{
			Message:     "failed to serialize HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	return out, nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// walk visits every non-empty text node outside ignored and
// data-no-translate subtrees.
func (p *HTMLProcessor) walk(doc *goquery.Document, visit func(n *html.Node, trimmed string)) {
	var recurse func(*html.Node)
	recurse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" {
					return
				}
			}
		}

		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				visit(n, trimmed)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			recurse(c)
		}
	}

	doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			recurse(n)
		}
	})
}

// retargetElement updates direction and language attributes on an element
// whose text content was just replaced with Turkish.
func retargetElement(el *html.Node) {
	for i, attr := range el.Attr {
		switch attr.Key {
		case "dir":
			if strings.EqualFold(attr.Val, "rtl") {
				el.Attr[i].Val = "ltr"
			}
		case "lang":
			el.Attr[i].Val = "tr"
		}
	}
}

// preserveWhitespace keeps the original leading/trailing whitespace around
// the translated text.
func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r"))
	leading := original[:leadingLen]

	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r"))
	trailing := ""
	if trailingLen > 0 {
		trailing = original[len(original)-trailingLen:]
	}

	return leading + translated + trailing
}

// Verify HTMLProcessor implements ContentProcessor
var _ ContentProcessor = (*HTMLProcessor)(nil)
