package docparse

import "strings"

func parseMan(lines []string) (*Man, error) {
	doc := &Man{}

	var root, lastSh *ManNode
	var lastChild *ManNode
	// RETURN VALUE(S) and EXIT STATUS headers are sometimes written as
	// two lines ("RETURN" then "VALUES"); pendingTitle joins them the
	// same way pman_sh inspects a second head line when the first
	// didn't resolve to a known section.
	pendingTitle := ""

	appendChild := func(n *ManNode) {
		if lastSh == nil {
			return
		}
		n.Sec = lastSh.Sec
		if lastChild == nil {
			lastSh.Child = n
		} else {
			lastChild.Next = n
		}
		lastChild = n
	}

	for _, raw := range lines {
		pl := tokenizeLine(raw)
		if !pl.isMacro {
			if strings.TrimSpace(pl.text) == "" {
				continue
			}
			appendChild(&ManNode{Type: NodeText, Name: pl.text})
			continue
		}

		switch pl.name {
		case "TH":
			if len(pl.args) > 0 {
				doc.Meta.Title = pl.args[0]
			}
			if len(pl.args) > 1 {
				doc.Meta.Section = pl.args[1]
			}
		case "SH", "":
			title := strings.Join(pl.args, " ")
			if pendingTitle != "" {
				title = pendingTitle + " " + title
				pendingTitle = ""
			} else if first := strings.ToUpper(strings.TrimSpace(title)); first == "" || first == "RETURN" || first == "EXIT" {
				// an empty title (a bare "." line) is skipped; "RETURN"
				// or "EXIT" is the first half of a two-line title: hold
				// it and fold the next SH's title in, matching pman_sh's
				// two-line RETURN VALUE / EXIT STATUS handling.
				pendingTitle = title
				continue
			}
			sh := &ManNode{Type: NodeElem, Tok: ManSH, Name: "SH", Args: strings.Fields(title), Sec: SectionFromTitle(title)}
			if root == nil {
				root = sh
			} else {
				lastSh.Next = sh
			}
			lastSh = sh
			lastChild = nil
		default:
			tok := ManOther
			if manBlockMacros[pl.name] {
				tok = ManBlock
			}
			appendChild(&ManNode{Type: NodeElem, Tok: tok, Name: pl.name, Args: pl.args})
		}
	}

	doc.Root = root
	return doc, nil
}
