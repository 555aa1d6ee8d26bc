package docparse

import "testing"

const sampleMdoc = `.Dd January 1, 2026
.Dt LS 1
.Os
.Sh NAME
.Nm ls
.Nd list directory contents
.Sh SYNOPSIS
.Nm ls
.Op Fl l
.Sh DESCRIPTION
For each operand that names a file, ls displays its name.
.Xr printf 3
.Pp
See also stat.
`

const sampleMan = `.TH LS 1
.SH NAME
ls \- list directory contents
.SH SYNOPSIS
.B ls
[
.I OPTION
]...
.SH DESCRIPTION
List information about FILEs.
`

func TestParseMdocDialect(t *testing.T) {
	mdoc, man, err := Parse(sampleMdoc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if man != nil {
		t.Fatal("expected nil man AST for mdoc source")
	}
	if mdoc == nil {
		t.Fatal("expected non-nil mdoc AST")
	}
	if mdoc.Meta.Title != "LS" || mdoc.Meta.Section != "1" {
		t.Fatalf("unexpected meta: %+v", mdoc.Meta)
	}

	var names []string
	for n := mdoc.Root; n != nil; n = n.Next {
		names = append(names, n.Name)
	}
	if len(names) != 3 {
		t.Fatalf("expected 3 top-level Sh nodes, got %d: %v", len(names), names)
	}
}

func TestParseManDialect(t *testing.T) {
	mdoc, man, err := Parse(sampleMan)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mdoc != nil {
		t.Fatal("expected nil mdoc AST for man source")
	}
	if man == nil {
		t.Fatal("expected non-nil man AST")
	}
	if man.Meta.Title != "LS" {
		t.Fatalf("unexpected meta: %+v", man.Meta)
	}
}

func TestParseUnknownDialect(t *testing.T) {
	_, _, err := Parse("just some text\nwith no macros\n")
	if err == nil {
		t.Fatal("expected error for unrecognized source")
	}
}

func TestSectionFromTitle(t *testing.T) {
	cases := map[string]Section{
		"NAME":         SecName,
		"return value": SecReturnValues,
		"EXIT STATUS":  SecExitStatus,
		"NOT A REAL SECTION": SecNone,
	}
	for title, want := range cases {
		if got := SectionFromTitle(title); got != want {
			t.Errorf("SectionFromTitle(%q) = %v, want %v", title, got, want)
		}
	}
}
