package sink

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/verify"
)

// ParseSVG recovers the primitive list from an SVG written by [RenderSVG],
// in document order. Groups without a data-id attribute are ignored.
func ParseSVG(data []byte) ([]verify.Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []verify.Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse svg")
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "g" {
			continue
		}
		el, ok, err := elementFrom(start.Attr)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, el)
		}
	}
}

func elementFrom(attrs []xml.Attr) (verify.Element, bool, error) {
	var (
		el    verify.Element
		found bool
	)
	for _, a := range attrs {
		var err error
		switch a.Name.Local {
		case "data-id":
			found = true
			el.ID, err = strconv.Atoi(a.Value)
		case "data-kind":
			el.Kind = a.Value
		case "data-tier":
			tier, ok := layout.ParseZLayer(a.Value)
			if !ok {
				return el, false, errors.New(errors.ErrCodeInvalidFormat, "unknown tier %q", a.Value)
			}
			el.Tier = tier
		case "data-source":
			el.Source, err = strconv.Atoi(a.Value)
		case "data-target":
			el.Target, err = strconv.Atoi(a.Value)
		}
		if err != nil {
			return el, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "attribute %s", a.Name.Local)
		}
	}
	return el, found, nil
}
