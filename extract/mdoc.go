package extract

import (
	"fmt"
	"strings"

	"github.com/mandb/apropos/docparse"
)

// mdocDispatch is the fixed, mostly-empty table of macro handlers
// makemandb calls mdocs[MDOC_MAX]: only Nm, Nd, Xr and Pp carry
// meaning, everything else just lets its section's generic routing
// (or nothing, for a bare nested macro with no args) take over.
var mdocDispatch = map[docparse.MdocMacro]func(e *extractor, d *Document, n *docparse.MdocNode){
	docparse.MdocNm: mdocNm,
	docparse.MdocNd: mdocNd,
	docparse.MdocXr: mdocXr,
	docparse.MdocPp: mdocPp,
}

func extractMdoc(e *extractor, mdoc *docparse.Mdoc, d *Document) {
	d.PageType = PageTypeMdoc
	d.Machine = mdoc.Meta.Arch
	if len(mdoc.Meta.Section) > 0 {
		d.Section = mdoc.Meta.Section[:1]
	}
	for sh := mdoc.Root; sh != nil; sh = sh.Next {
		mdocSh(e, d, sh)
	}
}

// mdocSh walks one .Sh block's children, the Go shape of pmdoc_Sh: text
// children route directly, a Nm child inside DESCRIPTION (or any
// section after NAME) has its name substituted from the cache instead
// of being re-extracted, Xr and Pp go through their handlers, and any
// other macro with no dispatch entry still contributes its literal
// arguments to the section.
func mdocSh(e *extractor, d *Document, sh *docparse.MdocNode) {
	for c := sh.Child; c != nil; c = c.Next {
		if c.Type == docparse.NodeText {
			routeText(d, e.limit, sh.Sec, c.Name)
			continue
		}
		if h, ok := mdocDispatch[c.Tok]; ok {
			h(e, d, c)
			continue
		}
		if len(c.Args) > 0 {
			routeText(d, e.limit, sh.Sec, strings.Join(c.Args, " "))
		}
	}
}

func mdocNm(e *extractor, d *Document, n *docparse.MdocNode) {
	if d.Name != "" {
		routeText(d, e.limit, n.Sec, d.Name)
		return
	}
	d.Name = strings.Join(n.Args, " ")
}

func mdocNd(e *extractor, d *Document, n *docparse.MdocNode) {
	text := strings.Join(n.Args, " ")
	if d.NameDesc == "" {
		d.NameDesc = text
	} else {
		d.NameDesc = d.NameDesc + " " + text
	}
}

func mdocXr(e *extractor, d *Document, n *docparse.MdocNode) {
	if len(n.Args) < 2 {
		return
	}
	routeText(d, e.limit, n.Sec, fmt.Sprintf("%s(%s)", n.Args[0], n.Args[1]))
}

func mdocPp(e *extractor, d *Document, n *docparse.MdocNode) {
	routeText(d, e.limit, n.Sec, "\n")
}
