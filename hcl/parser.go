package hcl

import "fmt"

// ParseError is one recoverable parse failure; the parser resyncs past it
// to the next block boundary (honouring brace depth) and keeps going, per
// spec §7 ("parser resyncs to block boundaries... never thrown").
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hcl: %d:%d: %s", e.Line, e.Col, e.Msg)
}

// parser walks a token slice with simple lookahead. It never panics;
// malformed input produces a ParseError appended to errs and the parser
// skips forward past the '}' that closes the current block (or to the
// next top-level patch/composite keyword, or EOF) before continuing, so a
// single typo doesn't swallow the rest of the file's diagnostics.
type parser struct {
	toks []Token
	pos  int
	errs []error
}

// Parse tokenizes and parses src into a Document. It never returns a nil
// Document even on error: callers should consult the returned error slice
// (always non-nil length > 0 on failure) to decide whether compilation
// should proceed. A lex error aborts immediately since no token stream
// exists to resync over.
func Parse(src string) (Document, []error) {
	toks, err := Lex(src)
	if err != nil {
		return Document{}, []error{err}
	}
	p := &parser{toks: toks}
	doc := p.parseDocument()
	return doc, p.errs
}

func (p *parser) peek() Token  { return p.toks[p.pos] }
func (p *parser) at(k TokenKind) bool { return p.peek().Kind == k }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(msg string) {
	t := p.peek()
	p.errs = append(p.errs, &ParseError{t.Line, t.Col, msg})
}

func (p *parser) expect(k TokenKind, what string) (Token, bool) {
	if p.peek().Kind != k {
		p.fail(fmt.Sprintf("expected %s, got %q", what, p.peek().Text))
		return Token{}, false
	}
	return p.next(), true
}

// resyncToTopLevel skips tokens until it has consumed a '}' that brings
// the brace depth back to zero or below (the end of the enclosing block),
// or reaches a patch/composite keyword at depth zero, or EOF. Tracking
// depth keeps a nested `{ ... }` from being mistaken for that end.
func (p *parser) resyncToTopLevel() {
	depth := 0
	for !p.at(TokEOF) {
		t := p.peek()
		if t.Kind == TokLBrace {
			depth++
			p.next()
			continue
		}
		if t.Kind == TokRBrace {
			depth--
			p.next()
			if depth <= 0 {
				return
			}
			continue
		}
		if depth == 0 && t.Kind == TokIdent && (t.Text == "patch" || t.Text == "composite") {
			return
		}
		p.next()
	}
}

func (p *parser) parseDocument() Document {
	var doc Document
	for !p.at(TokEOF) {
		if !p.at(TokIdent) {
			p.fail(fmt.Sprintf("expected 'patch' or 'composite', got %q", p.peek().Text))
			p.resyncToTopLevel()
			continue
		}
		switch p.peek().Text {
		case "patch":
			p.next()
			name, ok := p.expect(TokString, "patch name string")
			if !ok {
				p.resyncToTopLevel()
				continue
			}
			if _, ok := p.expect(TokLBrace, "'{'"); !ok {
				p.resyncToTopLevel()
				continue
			}
			doc.PatchName = name.Text
			doc.Blocks = append(doc.Blocks, p.parseBlocksUntilClose()...)
		case "composite":
			p.next()
			typeTok, ok := p.expect(TokString, "composite type string")
			if !ok {
				p.resyncToTopLevel()
				continue
			}
			comp := p.parseCompositeBody(typeTok.Text)
			doc.Composites = append(doc.Composites, comp)
		default:
			p.fail(fmt.Sprintf("unexpected top-level identifier %q", p.peek().Text))
			p.resyncToTopLevel()
		}
	}
	return doc
}

// parseBlocksUntilClose parses zero or more `block "..." "..." { ... }`
// entries until it sees the closing '}' of the enclosing patch/composite,
// which it also consumes.
func (p *parser) parseBlocksUntilClose() []Block {
	var blocks []Block
	for {
		if p.at(TokRBrace) {
			p.next()
			return blocks
		}
		if p.at(TokEOF) {
			p.fail("unexpected end of file, expected '}'")
			return blocks
		}
		if !p.at(TokIdent) || p.peek().Text != "block" {
			p.fail(fmt.Sprintf("expected 'block' or '}', got %q", p.peek().Text))
			p.resyncToTopLevel()
			return blocks
		}
		blocks = append(blocks, p.parseBlock())
	}
}

func (p *parser) parseBlock() Block {
	p.next() // consume 'block'
	var b Block
	b.Attrs = make(map[string]Value)

	if t, ok := p.expect(TokString, "block type string"); ok {
		b.Type = t.Text
	}
	if t, ok := p.expect(TokString, "block display name string"); ok {
		b.DisplayName = t.Text
	}
	if _, ok := p.expect(TokLBrace, "'{'"); !ok {
		return b
	}

	for {
		if p.at(TokRBrace) {
			p.next()
			break
		}
		if p.at(TokEOF) {
			p.fail("unexpected end of file inside block body")
			break
		}
		if p.at(TokIdent) && p.peek().Text == "outputs" {
			p.next()
			if _, ok := p.expect(TokLBrace, "'{'"); ok {
				b.Outputs = append(b.Outputs, p.parseOutputsUntilClose()...)
			}
			continue
		}
		key, ok := p.parseAttrKey()
		if !ok {
			p.fail(fmt.Sprintf("expected attribute key, got %q", p.peek().Text))
			break
		}
		if _, ok := p.expect(TokEquals, "'='"); !ok {
			break
		}
		val, ok := p.parseValue()
		if !ok {
			p.resyncToTopLevel()
			return b
		}
		b.Attrs[key] = val
		b.AttrOrder = append(b.AttrOrder, key)
	}
	return b
}

// parseAttrKey accepts a bare identifier or a quoted string as an
// attribute key, per spec §6 ("quoted keys allowed for attributes whose
// names contain spaces or special characters").
func (p *parser) parseAttrKey() (string, bool) {
	t := p.peek()
	if t.Kind == TokIdent || t.Kind == TokString {
		p.next()
		return t.Text, true
	}
	return "", false
}

func (p *parser) parseValue() (Value, bool) {
	t := p.peek()
	switch t.Kind {
	case TokNumber:
		p.next()
		return Value{Kind: ValNumber, Number: t.Num}, true
	case TokString:
		p.next()
		return Value{Kind: ValString, Str: t.Text}, true
	case TokNull:
		p.next()
		return Value{Kind: ValNull}, true
	case TokTrue:
		p.next()
		return Value{Kind: ValBool, Bool: true}, true
	case TokFalse:
		p.next()
		return Value{Kind: ValBool, Bool: false}, true
	default:
		p.fail(fmt.Sprintf("expected a value (number, string, null, true/false), got %q", t.Text))
		return Value{}, false
	}
}

// parseOutputsUntilClose parses `srcPort = targetBlock.targetPort` pairs
// until the closing '}' of the outputs body, which it consumes.
func (p *parser) parseOutputsUntilClose() []Output {
	var outs []Output
	for {
		if p.at(TokRBrace) {
			p.next()
			return outs
		}
		if p.at(TokEOF) {
			p.fail("unexpected end of file inside outputs body")
			return outs
		}
		key, ok := p.parseAttrKey()
		if !ok {
			p.fail(fmt.Sprintf("expected output port name, got %q", p.peek().Text))
			return outs
		}
		if _, ok := p.expect(TokEquals, "'='"); !ok {
			return outs
		}
		dstBlock, ok := p.parseAttrKey()
		if !ok {
			p.fail(fmt.Sprintf("expected target block name, got %q", p.peek().Text))
			return outs
		}
		if _, ok := p.expect(TokDot, "'.'"); !ok {
			return outs
		}
		dstPort, ok := p.parseAttrKey()
		if !ok {
			p.fail(fmt.Sprintf("expected target port name, got %q", p.peek().Text))
			return outs
		}
		outs = append(outs, Output{SrcPort: key, DstBlock: dstBlock, DstPort: dstPort})
	}
}

func (p *parser) parseCompositeBody(typeName string) Composite {
	comp := Composite{Type: typeName}
	if _, ok := p.expect(TokLBrace, "'{'"); !ok {
		p.resyncToTopLevel()
		return comp
	}
	for {
		if p.at(TokRBrace) {
			p.next()
			return comp
		}
		if p.at(TokEOF) {
			p.fail("unexpected end of file inside composite body")
			return comp
		}
		if !p.at(TokIdent) {
			p.fail(fmt.Sprintf("expected 'block', 'expose_input', 'expose_output', or '}', got %q", p.peek().Text))
			p.resyncToTopLevel()
			return comp
		}
		switch p.peek().Text {
		case "block":
			comp.Blocks = append(comp.Blocks, p.parseBlock())
		case "expose_input":
			p.next()
			comp.ExposeInputs = append(comp.ExposeInputs, p.parseExpose())
		case "expose_output":
			p.next()
			comp.ExposeOutputs = append(comp.ExposeOutputs, p.parseExpose())
		default:
			p.fail(fmt.Sprintf("unexpected identifier %q inside composite body", p.peek().Text))
			p.resyncToTopLevel()
			return comp
		}
	}
}

func (p *parser) parseExpose() Expose {
	var ex Expose
	if t, ok := p.expect(TokString, "exposed port name string"); ok {
		ex.ExternalID = t.Text
	}
	if _, ok := p.expect(TokLBrace, "'{'"); !ok {
		return ex
	}
	for {
		if p.at(TokRBrace) {
			p.next()
			return ex
		}
		if p.at(TokEOF) {
			p.fail("unexpected end of file inside expose body")
			return ex
		}
		key, ok := p.parseAttrKey()
		if !ok {
			p.fail(fmt.Sprintf("expected 'block', 'port', or 'label', got %q", p.peek().Text))
			return ex
		}
		if _, ok := p.expect(TokEquals, "'='"); !ok {
			return ex
		}
		val, ok := p.parseValue()
		if !ok {
			return ex
		}
		switch key {
		case "block":
			ex.Block = val.Str
		case "port":
			ex.Port = val.Str
		case "label":
			ex.Label = val.Str
		}
	}
}
