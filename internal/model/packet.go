package model

// DataKind classifies a packet's data payload. The wire contract
// permits a null data value but not an absent key; anything that is
// neither null nor a mapping is DataOther and rejected by validation.
type DataKind int

const (
	DataNull DataKind = iota
	DataMapping
	DataOther
)

func (k DataKind) String() string {
	switch k {
	case DataNull:
		return "null"
	case DataMapping:
		return "mapping"
	default:
		return "other"
	}
}

// ClassifyData returns the DataKind of a decoded data value.
func ClassifyData(v any) DataKind {
	switch v.(type) {
	case nil:
		return DataNull
	case map[string]any:
		return DataMapping
	default:
		return DataOther
	}
}
