package output

// Output formats understood by the writers registry.
const (
	FormatText  = "text"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Formats lists every format in the order shown in help text.
var Formats = []string{FormatText, FormatTSV, FormatJSON, FormatJSONL}

// TSVHeader is the canonical header row for TSV output.
const TSVHeader = "sequence_id\tprobability\tclass\tlength\ttruncated"

// Meta describes the run a set of predictions belongs to.
type Meta struct {
	RunID     string
	Model     string
	Threshold float64
	MaxLength int
}
