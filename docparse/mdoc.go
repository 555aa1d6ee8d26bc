package docparse

import "strings"

var mdocMacroTok = map[string]MdocMacro{
	"Nm": MdocNm,
	"Nd": MdocNd,
	"Xr": MdocXr,
	"Pp": MdocPp,
}

func parseMdoc(lines []string) (*Mdoc, error) {
	doc := &Mdoc{}

	var root, lastSh *MdocNode
	var lastChild *MdocNode

	appendChild := func(n *MdocNode) {
		if lastSh == nil {
			return // macro text outside any .Sh has no section to attach to
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
			appendChild(&MdocNode{Type: NodeText, Name: pl.text})
			continue
		}

		switch pl.name {
		case "Dt":
			if len(pl.args) > 0 {
				doc.Meta.Title = pl.args[0]
			}
			if len(pl.args) > 1 {
				doc.Meta.Section = pl.args[1]
			}
			if len(pl.args) > 2 {
				doc.Meta.Arch = pl.args[2]
			}
		case "Os", "":
			// document trailer / empty macro, no content to extract
		case "Sh":
			title := strings.Join(pl.args, " ")
			sh := &MdocNode{Type: NodeElem, Tok: MdocSh, Name: "Sh", Args: pl.args, Sec: SectionFromTitle(title)}
			if root == nil {
				root = sh
			} else {
				lastSh.Next = sh
			}
			lastSh = sh
			lastChild = nil
		default:
			tok, ok := mdocMacroTok[pl.name]
			if !ok {
				tok = MdocOther
			}
			appendChild(&MdocNode{Type: NodeElem, Tok: tok, Name: pl.name, Args: pl.args})
		}
	}

	doc.Root = root
	return doc, nil
}
