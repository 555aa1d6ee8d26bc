package extract

import "github.com/mandb/apropos/docparse"

// routeText sends one run of body text to the section buffer its
// Section maps to, shared between both dialects since mdoc_sec and
// man_sec name the same sections. Mirrors mdoc_parse_section and
// man_parse_section's switch statements. NAME is handled entirely by
// the Nm/Nd (or NAME-line) handlers, never through here. limit (the
// -l "names only" mode) suppresses every case, matching both original
// routers' early "if (mflags.limit) return" guard.
func routeText(d *Document, limit bool, sec docparse.Section, text string) {
	if limit || text == "" {
		return
	}
	switch sec {
	case docparse.SecSynopsis:
		d.synopsis.append(text)
	case docparse.SecLibrary:
		d.library.append(text)
	case docparse.SecReturnValues:
		d.returnValues.append(text)
	case docparse.SecEnvironment:
		d.environment.append(text)
	case docparse.SecFiles:
		d.files.append(text)
	case docparse.SecExitStatus:
		d.exitStatus.append(text)
	case docparse.SecDiagnostics:
		d.diagnostics.append(text)
	case docparse.SecErrors:
		d.errors.append(text)
	case docparse.SecName,
		docparse.SecExamples,
		docparse.SecStandards,
		docparse.SecHistory,
		docparse.SecAuthors,
		docparse.SecBugs:
		// ignored, matching the original's explicit no-op cases
	default:
		d.description.append(text)
	}
}
