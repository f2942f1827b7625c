package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a stylesheet. Supported selectors are simple ones: tag, .class, #id, tag.class,
// and comma lists of those. Rules with combinators and @-rules are skipped.
// Later rules override earlier ones at equal specificity.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInput(bytes.NewBufferString(content)), false)

	var selectors []string
	var props map[string]string
	skipDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("ui: parse css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			skipDepth++
		case css.EndAtRuleGrammar:
			if skipDepth > 0 {
				skipDepth--
			}
		case css.BeginRulesetGrammar:
			if skipDepth > 0 {
				selectors = nil
				continue
			}
			selectors = splitSelectors(p.Values())
			props = make(map[string]string)
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if props == nil {
				continue
			}
			props[strings.TrimSpace(string(data))] = joinValues(p.Values())
		case css.EndRulesetGrammar:
			for _, sel := range selectors {
				copied := make(map[string]string, len(props))
				for k, v := range props {
					copied[k] = v
				}
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: copied})
			}
			selectors, props = nil, nil
		}
	}
}

// splitSelectors turns the selector tokens of a ruleset into simple selectors, dropping any selector
// that uses whitespace or combinators.
func splitSelectors(tokens []css.Token) []string {
	var out []string
	var cur strings.Builder
	valid := true
	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" && valid {
			out = append(out, s)
		}
		cur.Reset()
		valid = true
	}
	for _, t := range tokens {
		switch t.TokenType {
		case css.CommaToken:
			flush()
		case css.WhitespaceToken:
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
		case css.DelimToken:
			if string(t.Data) != "." && string(t.Data) != "*" {
				valid = false
			}
			cur.Write(t.Data)
		default:
			cur.Write(t.Data)
		}
	}
	flush()
	simple := out[:0]
	for _, s := range out {
		if !strings.ContainsAny(s, " >+~[:") {
			simple = append(simple, s)
		}
	}
	return simple
}

func joinValues(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}
