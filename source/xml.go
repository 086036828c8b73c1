package source

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// readXML decodes
//
//	<records>
//	  <record key="knuth1997" type="book">
//	    <field name="title">The Art of Computer Programming</field>
//	  </record>
//	</records>
//
// Encoding declared in XML header is honored.
func readXML(r io.Reader, name string) ([]rawRecord, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read XML: %w", err)
	}

	root := doc.SelectElement("records")
	if root == nil {
		return nil, fmt.Errorf("unable to read XML: no records element")
	}

	var raws []rawRecord
	for i, rec := range root.SelectElements("record") {
		raw := rawRecord{
			Key:    rec.SelectAttrValue("key", ""),
			Type:   rec.SelectAttrValue("type", ""),
			Fields: make(map[string]string),
			origin: fmt.Sprintf("%s: record #%d", name, i+1),
		}
		for _, f := range rec.SelectElements("field") {
			raw.Fields[f.SelectAttrValue("name", "")] = f.Text()
		}
		raws = append(raws, raw)
	}
	return raws, nil
}
