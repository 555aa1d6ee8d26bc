package extract

import (
	"strings"

	"github.com/mandb/apropos/docparse"
)

func extractMan(e *extractor, man *docparse.Man, d *Document) {
	d.PageType = PageTypeMan
	if len(man.Meta.Section) > 0 {
		d.Section = man.Meta.Section[:1]
	}
	for sh := man.Root; sh != nil; sh = sh.Next {
		if sh.Sec == docparse.SecName {
			manName(e, d, sh)
			continue
		}
		manBody(e, d, sh)
	}
}

// manBody walks a non-NAME .SH block: Block (typography) macros are a
// no-op, matching pman_block's empty stub, every other node's text
// routes to its section via the shared router.
func manBody(e *extractor, d *Document, sh *docparse.ManNode) {
	for c := sh.Child; c != nil; c = c.Next {
		if c.Type == docparse.NodeText {
			routeText(d, e.limit, sh.Sec, c.Name)
			continue
		}
		if c.Tok == docparse.ManBlock {
			continue // pman_block: inline typography carries no text
		}
		if len(c.Args) > 0 {
			routeText(d, e.limit, sh.Sec, strings.Join(c.Args, " "))
		}
	}
}

// manName parses the NAME section: "name1, name2 \- description text".
// pman_parse_name concatenates every descendant (including Block
// children's arguments, unlike manBody's plain-text-only routing,
// since a page may write ".B ls \- list directory" on one line).
// The original's NAME splitter then walks forward through the
// resulting buffer with raw pointer arithmetic to skip past the name
// list and the "\-" separator, permanently losing the allocation's
// head pointer (the bug spec.md's Design Notes call out). Here the
// same split is done with a byte offset into an immutable string,
// which cannot lose or corrupt anything.
func manName(e *extractor, d *Document, sh *docparse.ManNode) {
	var parts []string
	for c := sh.Child; c != nil; c = c.Next {
		if c.Type == docparse.NodeText {
			parts = append(parts, c.Name)
		} else if len(c.Args) > 0 {
			parts = append(parts, strings.Join(c.Args, " "))
		}
	}
	raw := strings.Join(parts, " ")
	raw = strings.TrimLeft(raw, " \t")
	raw = strings.TrimPrefix(raw, `\&`)

	sepIdx := findNameSeparator(raw)
	var nameList, desc string
	if sepIdx >= 0 {
		nameList = raw[:sepIdx]
		desc = strings.TrimSpace(raw[sepIdx+len(nameSeparatorAt(raw, sepIdx)):])
	} else {
		nameList = raw
	}

	names := strings.Split(nameList, ",")
	for i, n := range names {
		names[i] = stripFontEscapes(strings.TrimSpace(n))
	}
	names = filterEmpty(names)

	if len(names) > 0 {
		d.Name = names[0]
		d.Links = append(d.Links, names[1:]...)
	}
	d.NameDesc = desc
}

// findNameSeparator locates the "\-" or bare " - " marker that ends
// the comma-separated name list and starts the description, returning
// -1 if none is present.
func findNameSeparator(s string) int {
	if i := strings.Index(s, `\-`); i >= 0 {
		return i
	}
	if i := strings.Index(s, " - "); i >= 0 {
		return i + 1 // keep the leading space out of nameList, matches "- " width below
	}
	return -1
}

func nameSeparatorAt(s string, idx int) string {
	if strings.HasPrefix(s[idx:], `\-`) {
		return `\-`
	}
	return "-"
}

// stripFontEscapes removes a \fB...\fR (or \fI...\fR) wrapper some
// pages put around the name itself.
func stripFontEscapes(s string) string {
	s = strings.TrimPrefix(s, `\fB`)
	s = strings.TrimPrefix(s, `\fI`)
	s = strings.TrimSuffix(s, `\fR`)
	return s
}

func filterEmpty(ss []string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
