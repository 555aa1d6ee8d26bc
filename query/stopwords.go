package query

// stopWords is the canonical stop-word list, transcribed from
// original_source/apropos.c's remove_stopwords array: the 26 single
// letters, the 10 digits, and the common English words it lists. This
// is the one and only stop-word list in this codebase (spec.md's Open
// Question about unifying the indexer's and the query tool's separate
// lists does not apply here, since the indexer in this reimplementation
// never filters stop words at all, matching original_source/makemandb.c
// never calling remove_stopwords).
var stopWords = buildStopWords()

func buildStopWords() map[string]bool {
	words := []string{
		"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
		"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
		"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
		"about", "after", "all", "also", "an", "and", "any", "are", "as",
		"at", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "can", "cannot", "could", "did",
		"do", "does", "doing", "down", "during", "each", "few", "for",
		"from", "further", "had", "has", "have", "having", "he", "her",
		"here", "hers", "herself", "him", "himself", "his", "how", "i",
		"if", "in", "into", "is", "it", "its", "itself", "just", "like",
		"man", "manual", "may", "me", "more", "most", "must", "my",
		"myself", "no", "nor", "not", "now", "of", "off", "on", "once",
		"only", "or", "other", "our", "ours", "ourselves", "out", "over",
		"own", "page", "name", "same", "she", "should", "so", "some",
		"such", "than", "that", "the", "their", "theirs", "them",
		"themselves", "then", "there", "these", "they", "this", "those",
		"through", "to", "too", "under", "until", "up", "use", "used",
		"uses", "very", "was", "we", "were", "what", "when", "where",
		"which", "while", "who", "whom", "why", "will", "with", "would",
		"you", "your", "yours", "yourself", "yourselves",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// IsStopWord reports whether term (already lowercased) is a stop word
// or a bare single character.
func IsStopWord(term string) bool {
	if len(term) <= 1 {
		return true
	}
	return stopWords[term]
}
