package document

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// xmlHeader is written before the root element.
const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>`

// indent is the per-level indentation of the XML sink.
const indent = "  "

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#xA;",
	"\r", "&#xD;",
	"\t", "&#x9;",
)

// WriteXML serializes d as indented UTF-8 XML.
//
// Elements without children are self-closed. Attribute values are escaped
// and any rune that XML 1.0 cannot represent is replaced with U+FFFD.
func WriteXML(w io.Writer, d *Document) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(xmlHeader)
	bw.WriteByte('\n')
	if d.Root != nil {
		writeElement(bw, d.Root, 0)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write xml: %w", err)
	}
	return nil
}

// MarshalXML returns the XML serialization of d.
func MarshalXML(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeElement(w *bufio.Writer, e *Element, depth int) {
	pad := strings.Repeat(indent, depth)
	w.WriteString(pad)
	w.WriteByte('<')
	w.WriteString(e.Name)
	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		w.WriteString(escapeAttr(a.Value))
		w.WriteByte('"')
	}
	if len(e.Children) == 0 {
		w.WriteString(" />\n")
		return
	}
	w.WriteString(">\n")
	for _, c := range e.Children {
		writeElement(w, c, depth+1)
	}
	w.WriteString(pad)
	w.WriteString("</")
	w.WriteString(e.Name)
	w.WriteString(">\n")
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(sanitize(s))
}

// sanitize replaces runes outside the XML 1.0 character range.
func sanitize(s string) string {
	clean := true
	for _, r := range s {
		if !isXMLChar(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if isXMLChar(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(utf8.RuneError)
		}
	}
	return b.String()
}

func isXMLChar(r rune) bool {
	switch {
	case r == utf8.RuneError:
		return false
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
