package hcl

import (
	"strings"
	"testing"
)

func TestParseMinimalPatch(t *testing.T) {
	src := `patch "demo" {
  block "Time" "clock" {
    outputs {
      phaseA = osc.phase
    }
  }
  block "Oscillator" "osc" {
    wave = "oscSin"
  }
}`
	doc, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if doc.PatchName != "demo" {
		t.Fatalf("expected patch name 'demo', got %q", doc.PatchName)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Outputs[0].DstBlock != "osc" || doc.Blocks[0].Outputs[0].DstPort != "phase" {
		t.Fatalf("unexpected output wiring: %+v", doc.Blocks[0].Outputs[0])
	}
	if doc.Blocks[1].Attrs["wave"].Str != "oscSin" {
		t.Fatalf("expected wave attr 'oscSin', got %+v", doc.Blocks[1].Attrs["wave"])
	}
}

func TestNegativeNumberLexesAsLiteral(t *testing.T) {
	for _, src := range []string{"-1", "-.5", "-0.25"} {
		toks, err := Lex(src)
		if err != nil {
			t.Fatalf("lexing %q: %v", src, err)
		}
		if toks[0].Kind != TokNumber {
			t.Fatalf("expected %q to lex as a number, got kind %v", src, toks[0].Kind)
		}
	}
}

func TestDashSpaceIsLexError(t *testing.T) {
	_, err := Lex("- 1")
	if err == nil {
		t.Fatal("expected '- 1' to be a lex error (dash not adjacent to digit)")
	}
}

func TestIdentifierWithDashIsNotANumber(t *testing.T) {
	toks, err := Lex("my-block")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != TokIdent || toks[0].Text != "my-block" {
		t.Fatalf("expected 'my-block' to lex as one identifier, got %+v", toks[0])
	}
}

func TestLeadingDashIdentifierIsError(t *testing.T) {
	// '-block' is neither a valid number (not digit-adjacent in a way
	// that consumes the whole token as an identifier) nor an identifier
	// (leading dash forbidden); the lexer must not silently accept it as
	// an identifier.
	toks, err := Lex("-block")
	if err == nil && toks[0].Kind == TokIdent {
		t.Fatal("expected '-block' to not lex as a bare identifier")
	}
}

func TestNullLiteral(t *testing.T) {
	src := `patch "p" {
  block "Const" "c" {
    value = null
  }
}`
	doc, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if doc.Blocks[0].Attrs["value"].Kind != ValNull {
		t.Fatalf("expected null literal, got %+v", doc.Blocks[0].Attrs["value"])
	}
}

func TestQuotedAttributeKey(t *testing.T) {
	src := `patch "p" {
  block "Const" "c" {
    "display name" = 1
  }
}`
	doc, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if doc.Blocks[0].Attrs["display name"].Number != 1 {
		t.Fatalf("expected quoted-key attribute to parse, got %+v", doc.Blocks[0].Attrs)
	}
}

func TestCompositeExposeSortedByExternalID(t *testing.T) {
	src := `composite "MyComposite" {
  block "Time" "clock" {}
  expose_output "zzz" {
    block = "clock"
    port = "phaseA"
  }
  expose_output "aaa" {
    block = "clock"
    port = "phaseA"
  }
}`
	doc, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	serialized := Serialize(doc)
	reparsed, errs2 := Parse(serialized)
	if len(errs2) != 0 {
		t.Fatalf("unexpected re-parse errors: %v", errs2)
	}
	reserialized := Serialize(reparsed)
	if serialized != reserialized {
		t.Fatalf("serialize(parse(serialize(doc))) was not stable:\nfirst:\n%s\nsecond:\n%s", serialized, reserialized)
	}
	aaa := strings.Index(serialized, `expose_output "aaa"`)
	zzz := strings.Index(serialized, `expose_output "zzz"`)
	if aaa < 0 || zzz < 0 || aaa > zzz {
		t.Fatalf("expected expose_output entries sorted by external id (aaa before zzz):\n%s", serialized)
	}
}

func TestRoundTripStable(t *testing.T) {
	src := `patch "demo" {
  block "Time" "clock" {
    outputs {
      phaseA = osc.phase
    }
  }
  block "Oscillator" "osc" {
    wave = "oscSin"
  }
}
`
	doc, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	first := Serialize(doc)
	reparsed, errs2 := Parse(first)
	if len(errs2) != 0 {
		t.Fatalf("unexpected re-parse errors: %v", errs2)
	}
	second := Serialize(reparsed)
	if first != second {
		t.Fatalf("round trip not stable:\n%s\n---\n%s", first, second)
	}
}

func TestParseErrorResyncsToNextBlock(t *testing.T) {
	src := `patch "p" {
  block "Bad" "b1" {
    x =
  }
  block "Good" "b2" {
    x = 1
  }
}`
	doc, errs := Parse(src)
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error from the malformed first block")
	}
	found := false
	for _, b := range doc.Blocks {
		if b.DisplayName == "b2" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the parser to resync and parse block b2, got %+v", doc.Blocks)
	}
}
