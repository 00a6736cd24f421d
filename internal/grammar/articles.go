package grammar

// Article is a leading article that book titles file under their main word:
// "Great War, The" sorts under G but displays as "The Great War".
type Article struct {
	Token string
	Lang  string
}

// Articles is the fixed table of recognized leading articles, ordered
// longest-token-first so that prefix-overlapping tokens ("Una" vs "Un")
// can never shadow each other regardless of how callers match them.
var Articles = []Article{
	{"Unos", "es"},
	{"Unas", "es"},
	{"Eine", "de"},
	{"Los", "es"},
	{"Las", "es"},
	{"Una", "es"},
	{"Les", "fr"},
	{"Une", "fr"},
	{"Des", "fr"},
	{"Der", "de"},
	{"Die", "de"},
	{"Das", "de"},
	{"Ein", "de"},
	{"The", "en"},
	{"An", "en"},
	{"El", "es"},
	{"La", "es"},
	{"Un", "es"},
	{"Le", "fr"},
	{"L'", "fr"},
	{"A", "en"},
}

// IsArticle reports whether word exactly matches a recognized leading article.
func IsArticle(word string) bool {
	for _, a := range Articles {
		if a.Token == word {
			return true
		}
	}
	return false
}

// stopWords are lowercase function words exempt from capitalization checks.
// The set mixes English, Spanish, French, German and Italian particles plus
// the common translator/editor abbreviations found in bibliographic names.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "as": {}, "at": {}, "by": {},
	"das": {}, "de": {}, "degli": {}, "dei": {}, "del": {}, "dell": {},
	"della": {}, "delle": {}, "delli": {}, "dello": {}, "der": {},
	"des": {}, "du": {}, "ed.": {}, "ein": {}, "eine": {}, "el": {},
	"for": {}, "from": {}, "il": {}, "in": {}, "into": {}, "la": {},
	"las": {}, "le": {}, "les": {}, "los": {}, "nor": {}, "of": {},
	"on": {}, "onto": {}, "or": {}, "the": {}, "to": {}, "tr.": {},
	"un": {}, "una": {}, "une": {}, "uno": {}, "unto": {}, "unas": {},
	"unos": {}, "ur.": {}, "van": {}, "von": {}, "with": {},
}

// IsStopWord reports whether word is exempt from capitalization checks.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
