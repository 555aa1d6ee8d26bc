package docparse

import "strings"

// Section identifies which named manual-page section a run of text
// belongs to, shared between both dialects the way mdoc_sec and man_sec
// are distinct C enums with the same member names in the original.
type Section int

const (
	SecNone Section = iota
	SecName
	SecLibrary
	SecSynopsis
	SecDescription
	SecReturnValues
	SecEnvironment
	SecFiles
	SecExitStatus
	SecDiagnostics
	SecErrors
	SecExamples
	SecStandards
	SecHistory
	SecAuthors
	SecBugs
)

// sectionTitles matches literal section headers the way pman_sh's
// strcmp chain does, and the way mdoc's own .Sh argument is compared.
// Two-line titles ("RETURN" + "VALUE(S)", "EXIT" + "STATUS") are
// resolved by the callers joining the title's fields before lookup,
// which also covers the single-line ".Sh RETURN VALUES" / ".SH RETURN
// VALUE" forms mdoc and man respectively tend to use.
var sectionTitles = map[string]Section{
	"NAME":          SecName,
	"LIBRARY":       SecLibrary,
	"SYNOPSIS":      SecSynopsis,
	"DESCRIPTION":   SecDescription,
	"RETURN VALUES": SecReturnValues,
	"RETURN VALUE":  SecReturnValues,
	"ENVIRONMENT":   SecEnvironment,
	"FILES":         SecFiles,
	"EXIT STATUS":   SecExitStatus,
	"DIAGNOSTICS":   SecDiagnostics,
	"ERRORS":        SecErrors,
	"EXAMPLES":      SecExamples,
	"STANDARDS":     SecStandards,
	"HISTORY":       SecHistory,
	"AUTHORS":       SecAuthors,
	"BUGS":          SecBugs,
}

// SectionFromTitle resolves a section heading's literal text to a
// Section, defaulting to SecNone (which the extractor's section router
// then falls through to the generic description buffer) for any title
// it doesn't recognize.
func SectionFromTitle(title string) Section {
	key := strings.ToUpper(strings.TrimSpace(title))
	if sec, ok := sectionTitles[key]; ok {
		return sec
	}
	return SecNone
}
