package sigfile

import (
	"encoding/xml"
	"io"

	"github.com/digipres-tools/droidsig/core/errors"
)

// Render serializes the signature file with an XML declaration and
// two-space indentation. Attribute and element escaping is handled here;
// values arrive raw from extraction.
func (sf *SignatureFile) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(sf, "", "  ")
	if err != nil {
		return nil, &errors.IOError{Operation: "render signature file", Err: err}
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// Write renders the document to w.
func (sf *SignatureFile) Write(w io.Writer) error {
	data, err := sf.Render()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return &errors.IOError{Operation: "write signature file", Err: err}
	}
	return nil
}
