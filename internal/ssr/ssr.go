// Package ssr rewrites the custom elements used in templates into plain
// styled HTML at render time, so pages need no client-side element
// registration.
package ssr

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ReplaceCustomElements renders the template output with custom elements
// replaced by their HTML equivalents.
func ReplaceCustomElements(writer io.Writer, reader io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	// <button-primary> becomes a styled <button>.
	doc.Find("button-primary").Each(func(_ int, s *goquery.Selection) {
		s.Nodes[0].Data = "button"
		s.AddClass("btn-primary")
	})

	// <stat-pill> becomes a styled <span> for the header statistics.
	doc.Find("stat-pill").Each(func(_ int, s *goquery.Selection) {
		s.Nodes[0].Data = "span"
		s.AddClass("stat-pill")
	})

	// <mood-badge mood="wary"> becomes a <span> with a per-mood class.
	doc.Find("mood-badge").Each(func(_ int, s *goquery.Selection) {
		mood, _ := s.Attr("mood")
		s.RemoveAttr("mood")
		s.Nodes[0].Data = "span"
		s.AddClass("mood-badge")
		if mood != "" {
			s.AddClass("mood-" + mood)
		}
	})

	// A full page keeps its doctype, head, and body intact. The parser
	// wraps fragments in html/head/body, so for fragments render only the
	// body children to recover the gohtml templating.
	root := doc.Get(0)
	if hasDoctype(root) {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if err = html.Render(writer, c); err != nil {
				return fmt.Errorf("render html: %w", err)
			}
		}
		return nil
	}
	body := doc.Find("body")
	if len(body.Nodes) > 0 {
		for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
			if err = html.Render(writer, c); err != nil {
				return fmt.Errorf("render html: %w", err)
			}
		}
	}
	return nil
}

// hasDoctype reports whether the parsed input was a full HTML document.
// Fragments never carry a doctype.
func hasDoctype(root *html.Node) bool {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return true
		}
	}
	return false
}
