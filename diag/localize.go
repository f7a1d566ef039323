package diag

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// entry holds the catalogue texts of a term and the Data keys feeding
// its verbs, in order.
type entry struct {
	args []string
	en   string
	de   string
}

var entries = map[string]entry{
	TermPartsMissing: {
		en: "The drawing is missing one of the required parts bridge, shape and pad.",
		de: "In der Zeichnung fehlt eines der benötigten Teile Steg, Front und Pad.",
	},
	TermConnectionMissing: {
		args: []string{"part1", "part2"},
		en:   "No shared edge found between %[1]s and %[2]s.",
		de:   "Keine gemeinsame Kante zwischen %[1]s und %[2]s gefunden.",
	},
	TermReconnectFailed: {
		args: []string{"part1", "part2"},
		en:   "Could not reconnect %[1]s and %[2]s after scaling.",
		de:   "%[1]s und %[2]s konnten nach dem Skalieren nicht wieder verbunden werden.",
	},
	TermUnassignedCircle: {
		args: []string{"part"},
		en:   "A circle in %[1]s was ignored.",
		de:   "Ein Kreis in %[1]s wurde ignoriert.",
	},
	TermMalformedPath: {
		args: []string{"part"},
		en:   "A path in %[1]s could not be read and was skipped.",
		de:   "Ein Pfad in %[1]s konnte nicht gelesen werden und wurde übersprungen.",
	},
	TermNoGeometry: {
		en: "The drawing contains no usable geometry.",
		de: "Die Zeichnung enthält keine verwendbare Geometrie.",
	},
	TermArcConnection: {
		args: []string{"part1", "part2"},
		en:   "%[1]s and %[2]s meet along an arc; the joint was not adjusted.",
		de:   "%[1]s und %[2]s treffen sich an einem Bogen; die Verbindung wurde nicht angepasst.",
	},
	TermInvalidColor: {
		args: []string{"part", "color"},
		en:   "The colour %[2]q for %[1]s is not recognised.",
		de:   "Die Farbe %[2]q für %[1]s ist unbekannt.",
	},
}

// Supported lists the languages with a message catalogue, default first.
var Supported = []language.Tag{language.English, language.German}

var (
	messages = newCatalog()
	matcher  = language.NewMatcher(Supported)
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for term, e := range entries {
		if err := b.SetString(language.English, term, e.en); err != nil {
			panic(err)
		}
		if err := b.SetString(language.German, term, e.de); err != nil {
			panic(err)
		}
	}
	return b
}

// MatchLanguage picks the best supported language for a list of
// Accept-Language style preferences. It falls back to English.
func MatchLanguage(prefs ...string) language.Tag {
	tag, _ := language.MatchStrings(matcher, prefs...)
	base, _ := tag.Base()
	for _, t := range Supported {
		if b, _ := t.Base(); b == base {
			return t
		}
	}
	return language.English
}

// Localize renders w in the given language. Unknown terms are returned
// verbatim.
func Localize(w Warning, tag language.Tag) string {
	e, ok := entries[w.Term]
	if !ok {
		return w.Term
	}
	args := make([]any, len(e.args))
	for i, k := range e.args {
		args[i] = w.Data[k]
	}
	return message.NewPrinter(tag, message.Catalog(messages)).Sprintf(w.Term, args...)
}
