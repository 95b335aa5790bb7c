package acq

// markerStyleLabels maps a marker item's raw 4-character style code to the
// display label AcqKnowledge's own UI shows for it. The recording format
// has no self-describing table for these — the codes are just whatever
// string the producing application happened to write — so this list only
// covers the styles that actually appear in recordings used to validate
// this package; anything else falls back to its raw code.
var markerStyleLabels = map[string]string{
	"flag": "Flag",
	"defl": "Default",
	"star": "Star",
	"chk1": "Checkmark",
	"trng": "Triangle",
	"diam": "Diamond",
	"sqar": "Square",
	"arow": "Arrow",
	"quak": "Question",
}

// markerStyleLabel returns the human-readable label for a raw marker style
// code, or the code itself, unchanged, when it isn't one of the known
// styles.
func markerStyleLabel(code string) string {
	if label, ok := markerStyleLabels[code]; ok {
		return label
	}
	return code
}
