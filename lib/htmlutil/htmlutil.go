package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CellText returns the trimmed, printable text content of a selection.
// Inner newlines are preserved since the portal renders values like
// "present / total" across multiple text nodes.
func CellText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		getTextRecursive(n, &buffer)
	}
	return strings.Trim(removeNonPrintable(buffer.String()), " \t\n")
}

type Anchor struct {
	Name string
	Href string
}

// FindAnchorByHref returns the first anchor whose href contains the given
// substring, or false when none does.
func FindAnchorByHref(doc *goquery.Document, substr string) (Anchor, bool) {
	var found Anchor
	ok := false
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if strings.Contains(href, substr) {
			found = Anchor{Name: CellText(a), Href: href}
			ok = true
			return false
		}
		return true
	})
	return found, ok
}
