package hcl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Serialize renders doc back to the HCL-like text form. Attribute keys
// that don't lex cleanly as a bare identifier are wrapped in quotes (the
// same rule the grammar's quoted-key allowance exists for), and Expose
// entries are emitted sorted by external id, both per spec §6, so that
// serialize(parse(serialize(doc))) == serialize(doc) for a canonicalized
// Document.
func Serialize(doc Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("patch %s {\n", quoteString(doc.PatchName)))
	for _, b := range doc.Blocks {
		writeBlock(&sb, b, 1)
	}
	sb.WriteString("}\n")

	for _, c := range doc.Composites {
		sb.WriteString("\n")
		writeComposite(&sb, c)
	}

	return sb.String()
}

func indent(n int) string { return strings.Repeat("  ", n) }

func writeBlock(sb *strings.Builder, b Block, depth int) {
	sb.WriteString(fmt.Sprintf("%sblock %s %s {\n", indent(depth), quoteString(b.Type), quoteString(b.DisplayName)))
	for _, key := range b.AttrOrder {
		v := b.Attrs[key]
		sb.WriteString(fmt.Sprintf("%s%s = %s\n", indent(depth+1), attrKey(key), formatValue(v)))
	}
	if len(b.Outputs) > 0 {
		sb.WriteString(fmt.Sprintf("%soutputs {\n", indent(depth+1)))
		outs := append([]Output(nil), b.Outputs...)
		sort.SliceStable(outs, func(i, j int) bool { return outs[i].SrcPort < outs[j].SrcPort })
		for _, o := range outs {
			sb.WriteString(fmt.Sprintf("%s%s = %s.%s\n", indent(depth+2), attrKey(o.SrcPort), attrKey(o.DstBlock), attrKey(o.DstPort)))
		}
		sb.WriteString(fmt.Sprintf("%s}\n", indent(depth+1)))
	}
	sb.WriteString(fmt.Sprintf("%s}\n", indent(depth)))
}

func writeComposite(sb *strings.Builder, c Composite) {
	sb.WriteString(fmt.Sprintf("composite %s {\n", quoteString(c.Type)))
	for _, b := range c.Blocks {
		writeBlock(sb, b, 1)
	}

	exposeIns := append([]Expose(nil), c.ExposeInputs...)
	sort.SliceStable(exposeIns, func(i, j int) bool { return exposeIns[i].ExternalID < exposeIns[j].ExternalID })
	for _, e := range exposeIns {
		writeExpose(sb, "expose_input", e)
	}

	exposeOuts := append([]Expose(nil), c.ExposeOutputs...)
	sort.SliceStable(exposeOuts, func(i, j int) bool { return exposeOuts[i].ExternalID < exposeOuts[j].ExternalID })
	for _, e := range exposeOuts {
		writeExpose(sb, "expose_output", e)
	}

	sb.WriteString("}\n")
}

func writeExpose(sb *strings.Builder, keyword string, e Expose) {
	sb.WriteString(fmt.Sprintf("  %s %s {\n", keyword, quoteString(e.ExternalID)))
	sb.WriteString(fmt.Sprintf("    block = %s\n", quoteString(e.Block)))
	sb.WriteString(fmt.Sprintf("    port = %s\n", quoteString(e.Port)))
	if e.Label != "" {
		sb.WriteString(fmt.Sprintf("    label = %s\n", quoteString(e.Label)))
	}
	sb.WriteString("  }\n")
}

func formatValue(v Value) string {
	switch v.Kind {
	case ValNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ValString:
		return quoteString(v.Str)
	case ValBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValNull:
		return "null"
	default:
		return "null"
	}
}

// attrKey wraps key in quotes if it wouldn't lex cleanly as a bare
// identifier (spaces, leading digit, leading dash, other punctuation).
func attrKey(key string) string {
	if isBareIdent(key) {
		return key
	}
	return quoteString(key)
}

func isBareIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentCont(s[i]) {
			return false
		}
	}
	return true
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(s[i])
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
