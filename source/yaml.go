package source

import (
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"
)

// readYAML decodes list of records:
//
//	- key: knuth1997
//	  type: book
//	  fields:
//	    title: The Art of Computer Programming
func readYAML(r io.Reader, name string) ([]rawRecord, error) {
	var raws []rawRecord

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raws); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to decode YAML: %w", err)
	}
	for i := range raws {
		raws[i].origin = fmt.Sprintf("%s: record #%d", name, i+1)
	}
	return raws, nil
}
