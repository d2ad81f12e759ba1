package agent

import (
	"strings"
)

// confirmation classifies input received while awaiting confirmation.
type confirmation int

const (
	// confirmAffirmative authorizes the action phase.
	confirmAffirmative confirmation = iota

	// confirmAmbiguous warrants a clarifying re-prompt, never a guess.
	confirmAmbiguous

	// confirmRefinement is a new instruction: reasoning starts over.
	confirmRefinement
)

// affirmativePhrases is the fixed set of accepted confirmations, matched
// case-insensitively after punctuation stripping. Includes common synonyms
// across languages.
var affirmativePhrases = map[string]bool{
	"yes": true, "y": true, "yeah": true, "yep": true, "yup": true,
	"sure": true, "ok": true, "okay": true, "go ahead": true,
	"proceed": true, "do it": true, "let's do it": true, "lets do it": true,
	"execute": true, "act": true, "confirm": true, "affirmative": true,
	"please do": true, "go for it": true, "sounds good": true,
	"si": true, "sí": true, "oui": true, "ja": true, "da": true, "hai": true,
}

// hedgePhrases neither confirm nor redirect; they get a clarifying
// re-prompt.
var hedgePhrases = map[string]bool{
	"maybe": true, "perhaps": true, "hmm": true, "hm": true,
	"not sure": true, "idk": true, "dunno": true, "i don't know": true,
}

// classifyConfirmation decides what confirmation-phase input means.
func classifyConfirmation(input string) confirmation {
	normalized := normalizeConfirmation(input)

	switch {
	case normalized == "":
		return confirmAmbiguous
	case affirmativePhrases[normalized]:
		return confirmAffirmative
	case hedgePhrases[normalized]:
		return confirmAmbiguous
	}

	// Short phrases led by an affirmative word ("yes please", "ok go")
	// still confirm; anything longer is treated as a new instruction.
	words := strings.Fields(normalized)
	if len(words) <= 3 && affirmativePhrases[words[0]] {
		return confirmAffirmative
	}

	return confirmRefinement
}

// normalizeConfirmation lowercases and strips surrounding punctuation so
// "Yes!" and "yes" classify identically.
func normalizeConfirmation(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	return strings.Trim(s, ".!?,;: \t\r\n")
}
