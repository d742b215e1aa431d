// Package sanitize reduces collaborator-supplied rich text to an
// allow-listed subset of HTML before it is ever handed to a renderer.
package sanitize

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

var allowedTags = map[string]bool{
	"p": true, "br": true, "b": true, "strong": true, "i": true, "em": true,
	"u": true, "a": true, "ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true,
	"blockquote": true, "span": true, "code": true, "pre": true,
}

// droppedTags are removed together with their content; unwrapping them
// would leak executable or invisible payloads as text.
const droppedTags = "script,style,iframe,object,embed,form,noscript,link,meta,svg,math,template"

// HTML returns a sanitized copy of the input fragment. Unknown benign
// tags are unwrapped to their children, dangerous ones are dropped
// entirely, and every attribute except a safe href on anchors is
// stripped.
func HTML(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return html.EscapeString(input)
	}

	doc.Find(droppedTags).Remove()

	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		node := s.Nodes[0]
		tag := goquery.NodeName(s)
		kept := node.Attr[:0]
		for _, attr := range node.Attr {
			if tag == "a" && attr.Key == "href" && safeHref(attr.Val) {
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})

	// Unwrap disallowed tags until none remain; nested offenders surface
	// again once their parent is gone.
	for {
		disallowed := doc.Find("body *").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return !allowedTags[goquery.NodeName(s)]
		})
		if disallowed.Length() == 0 {
			break
		}
		disallowed.Each(func(_ int, s *goquery.Selection) {
			s.ReplaceWithSelection(s.Contents())
		})
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return html.EscapeString(input)
	}
	return strings.TrimSpace(out)
}

// Text flattens an HTML fragment to its visible words: markup becomes
// whitespace so adjacent elements never merge into one word, script and
// style bodies are skipped, and runs of whitespace collapse to a single
// space.
func Text(input string) string {
	tok := xhtml.NewTokenizer(strings.NewReader(input))
	var b strings.Builder
	skip := 0
	for {
		switch tok.Next() {
		case xhtml.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case xhtml.StartTagToken:
			name, _ := tok.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
		case xhtml.EndTagToken:
			name, _ := tok.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
		case xhtml.TextToken:
			if skip == 0 {
				b.Write(tok.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func safeHref(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "http://") ||
		strings.HasPrefix(href, "https://") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "/")
}
