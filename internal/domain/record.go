package domain

// ParagraphRecord is one extracted paragraph plus its translation
type ParagraphRecord struct {
	Page        int    `json:"page"`  // 1-based page number
	Index       int    `json:"index"` // 0-based position within the page
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// NewParagraphRecord creates a record with an empty translation
func NewParagraphRecord(page, index int, original string) ParagraphRecord {
	return ParagraphRecord{
		Page:     page,
		Index:    index,
		Original: original,
	}
}
