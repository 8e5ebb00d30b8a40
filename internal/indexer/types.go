package indexer

// Chunk is a piece of a document that is embedded on its own.
type Chunk struct {
	Index       int    // position within the document, from 0
	HeadingPath string // "Title > Heading > Subheading"
	Text        string
}

// DocumentInput is what the pipeline needs to index a document.
type DocumentInput struct {
	ID      string
	OwnerID string
	CaseID  string // empty when the document is not in a case
	Title   string
	Content string
}
