package index

// Posting records the occurrences of one term in one document: the docID and
// the ascending positions within that document's token stream.
type Posting struct {
	DocID     string
	Positions []int
}

// PostingList holds one term's postings, sorted by docID.
type PostingList []Posting

// Find returns the posting for docID, if present. Lookup is a binary search
// over the docID-sorted list.
func (pl PostingList) Find(docID string) (Posting, bool) {
	lo, hi := 0, len(pl)
	for lo < hi {
		mid := (lo + hi) / 2
		if pl[mid].DocID < docID {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(pl) && pl[lo].DocID == docID {
		return pl[lo], true
	}
	return Posting{}, false
}

// TermEntry is one row of the inverted index: a term, its document
// frequency, and its postings list.
type TermEntry struct {
	Term     string
	DocFreq  int
	Postings PostingList
}
