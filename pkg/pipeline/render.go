package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/snapshoot/pkg/document"
)

// Render serializes doc in the given format. detailed only affects dot and
// svg output.
func Render(ctx context.Context, doc *document.Document, format string, detailed bool) ([]byte, error) {
	switch format {
	case document.FormatXML:
		return document.MarshalXML(doc)
	case document.FormatJSON:
		var buf bytes.Buffer
		if err := document.WriteJSON(&buf, doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case document.FormatDOT:
		return []byte(document.ToDOT(doc, document.DOTOptions{Detailed: detailed})), nil
	case document.FormatSVG:
		return document.RenderSVG(ctx, document.ToDOT(doc, document.DOTOptions{Detailed: detailed}))
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
