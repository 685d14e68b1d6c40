package document

// Output formats understood by the export pipeline.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Formats lists every output format, canonical first.
var Formats = []string{FormatXML, FormatJSON, FormatDOT, FormatSVG}
