package provider

// Token is one token record from a dependency parse. IDs are 1-based within
// the sentence; Head is the ID of the syntactic head (0 for the root).
type Token struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	UPOS   string `json:"upos"`
	XPOS   string `json:"xpos"`
	Head   int    `json:"head"`
	Deprel string `json:"deprel"`
}

// ParseResult is the parsed sentence list for one input text.
type ParseResult struct {
	Sentences [][]Token
}
