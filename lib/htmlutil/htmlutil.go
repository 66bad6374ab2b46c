package htmlutil

import (
	"bytes"
	"regexp"
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

// MetaContent returns the content attribute of the first <meta> tag
// with the given name, or "" when no such tag exists.
func MetaContent(doc *goquery.Document, name string) string {
	return doc.Find("meta[name="+name+"]").AttrOr("content", "")
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// PageTitle returns the document's <title> text with non-printable
// characters stripped and inner whitespace collapsed.
func PageTitle(doc *goquery.Document) string {
	sel := doc.Find("title")
	if len(sel.Nodes) == 0 {
		return ""
	}
	title := GetText(sel.Nodes[0])
	title = removeNonPrintable(title)
	title = strings.Trim(title, " \t\n")
	return innerWhitespace.ReplaceAllString(title, " ")
}
