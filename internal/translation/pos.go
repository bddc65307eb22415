package translation

import "strings"

// partOfSpeechES maps English grammatical categories to their Spanish names
var partOfSpeechES = map[string]string{
	"noun":         "sustantivo",
	"verb":         "verbo",
	"adjective":    "adjetivo",
	"adverb":       "adverbio",
	"pronoun":      "pronombre",
	"preposition":  "preposición",
	"conjunction":  "conjunción",
	"interjection": "interjección",
	"article":      "artículo",
	"determiner":   "determinante",
	"participle":   "participio",
	"phrase":       "frase",
	"idiom":        "modismo",
	"prefix":       "prefijo",
	"suffix":       "sufijo",
}

// TranslatePartOfSpeech returns the Spanish name of a part-of-speech tag.
// Unknown tags are returned exactly as given.
func TranslatePartOfSpeech(tag string) string {
	if es, ok := partOfSpeechES[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return es
	}
	return tag
}
