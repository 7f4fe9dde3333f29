package directededge

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)


const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"
const documentOpen = "<directededge version=\"1.0\">\n"
const documentClose = "</directededge>\n"


// ToXml is the wire document for a save.
// Ids, tags, and property names and values are written unescaped.
func (self *Item) ToXml() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(documentOpen)
	self.writeItemElement(&b)
	b.WriteString(documentClose)
	b.WriteString("\n")
	return b.String()
}

// writes `<item>` with links, then tags, then properties
func (self *Item) writeItemElement(b *strings.Builder) {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()

	fmt.Fprintf(b, "<item id=\"%s\">\n", self.id)
	for _, link := range self.links {
		fmt.Fprintf(b, "<link weight=\"%d\" type=\"%s\">%s</link>\n", link.Weight, link.Type, link.Target)
	}
	for _, tag := range self.tags.Values() {
		fmt.Fprintf(b, "<tag>%s</tag>\n", tag)
	}
	for _, key := range self.properties.Keys() {
		value, _ := self.properties.Get(key)
		fmt.Fprintf(b, "<property name=\"%s\">%s</property>\n", key, value)
	}
	b.WriteString("</item>\n")
}


type itemProperty struct {
	name  string
	value string
}

type itemDocument struct {
	links      []Link
	tags       []string
	properties []itemProperty
}

type elementText struct {
	Text string `xml:",chardata"`
}


// Collects every `link`, `tag`, and `property` element in the document, in document order.
// Tags with no text are skipped.
func parseItemDocument(r io.Reader) (*itemDocument, error) {
	document := &itemDocument{}
	err := eachElement(r, func(decoder *xml.Decoder, start xml.StartElement) error {
		switch start.Name.Local {
		case "link":
			var text elementText
			if err := decoder.DecodeElement(&text, &start); err != nil {
				return err
			}
			if text.Text == "" {
				return fmt.Errorf("%w: link with no target", ErrMalformedDocument)
			}
			link := Link{
				Target: text.Text,
			}
			for _, attr := range start.Attr {
				switch attr.Name.Local {
				case "weight":
					weight, err := strconv.Atoi(strings.TrimSpace(attr.Value))
					if err != nil {
						return fmt.Errorf("%w: link weight %q", ErrMalformedDocument, attr.Value)
					}
					link.Weight = weight
				case "type":
					link.Type = attr.Value
				}
			}
			document.links = append(document.links, link)
		case "tag":
			var text elementText
			if err := decoder.DecodeElement(&text, &start); err != nil {
				return err
			}
			if text.Text != "" {
				document.tags = append(document.tags, text.Text)
			}
		case "property":
			if len(start.Attr) == 0 {
				return fmt.Errorf("%w: property with no name", ErrMalformedDocument)
			}
			var text elementText
			if err := decoder.DecodeElement(&text, &start); err != nil {
				return err
			}
			document.properties = append(document.properties, itemProperty{
				name:  start.Attr[0].Value,
				value: text.Text,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return document, nil
}

// ids of each `marker` element in document order. Empty markers are skipped.
func parseQueryDocument(r io.Reader, marker string) ([]string, error) {
	ids := []string{}
	err := eachElement(r, func(decoder *xml.Decoder, start xml.StartElement) error {
		if start.Name.Local != marker {
			return nil
		}
		var text elementText
		if err := decoder.DecodeElement(&text, &start); err != nil {
			return err
		}
		if text.Text != "" {
			ids = append(ids, text.Text)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func eachElement(r io.Reader, callback func(*xml.Decoder, xml.StartElement) error) error {
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedDocument, err)
		}
		if start, ok := token.(xml.StartElement); ok {
			if err := callback(decoder, start); err != nil {
				if _, ok := err.(*xml.SyntaxError); ok {
					return fmt.Errorf("%w: %s", ErrMalformedDocument, err)
				}
				return err
			}
		}
	}
}
