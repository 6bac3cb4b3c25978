package parser

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Page is one rendered product page as returned by the scraping proxy.
// Raw keeps the untouched text because most markers live inside inline
// JSON that a DOM walk would not surface.
type Page struct {
	Raw string
	Doc *goquery.Document
}

func Parse(r io.Reader, contentType string) (Page, error) {
	// Decode to UTF-8 if needed
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return Page{}, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return Page{}, err
		}
		utf8data = data
	}
	return FromString(string(utf8data))
}

// FromString builds a Page from text that is already UTF-8.
func FromString(raw string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return Page{}, err
	}
	return Page{Raw: raw, Doc: doc}, nil
}

func (p Page) title() string {
	if p.Doc == nil {
		return ""
	}
	return p.Doc.Find("title").First().Text()
}

func (p Page) metaProperty(prop string) string {
	if p.Doc == nil {
		return ""
	}
	return strings.TrimSpace(p.Doc.Find(`meta[property="` + prop + `"]`).First().AttrOr("content", ""))
}
