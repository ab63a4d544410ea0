package chord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kinoshitayoshihiro/haru/model"
)

// ParseError reports a chord label that does not match the token grammar.
type ParseError struct {
	Label string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("chord %q: %s at position %d", e.Label, e.Msg, e.Pos)
}

var pitchClasses = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var restLabels = map[string]bool{
	"": true, "rest": true, "r": true, "nc": true, "n.c.": true,
	"silence": true, "-": true,
}

// IsRest reports whether the label denotes an authored silence rather
// than a chord.
func IsRest(label string) bool {
	return restLabels[strings.ToLower(strings.TrimSpace(label))]
}

type parser struct {
	label string
	pos   int
}

func (p *parser) fail(msg string) *ParseError {
	return &ParseError{Label: p.label, Pos: p.pos, Msg: msg}
}

func (p *parser) rest() string { return p.label[p.pos:] }

func (p *parser) eat(tok string) bool {
	if strings.HasPrefix(p.rest(), tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

// pitchName reads a note letter with an optional accidental and returns
// the normalized name plus its pitch class.
func (p *parser) pitchName() (string, int, *ParseError) {
	if p.pos >= len(p.label) {
		return "", 0, p.fail("expected note letter")
	}
	letter := p.label[p.pos]
	pc, ok := pitchClasses[letter]
	if !ok {
		return "", 0, p.fail("expected note letter A-G")
	}
	p.pos++
	name := string(letter)
	switch {
	case p.eat("##"):
		name += "##"
		pc += 2
	case p.eat("#"):
		name += "#"
		pc++
	case p.eat("bb"):
		name += "bb"
		pc -= 2
	case p.eat("b"):
		name += "b"
		pc--
	}
	return name, ((pc % 12) + 12) % 12, nil
}

var extensionTokens = []string{"13", "11", "9", "7", "6"}

var alterationDegrees = []string{"13", "11", "9", "5"}

var addOmitDegrees = []string{"13", "11", "9", "6", "5", "4", "3", "2"}

func (p *parser) degree(after string) (int, *ParseError) {
	for _, d := range addOmitDegrees {
		if p.eat(d) {
			n, _ := strconv.Atoi(d)
			return n, nil
		}
	}
	return 0, p.fail("expected degree after " + after)
}

// Parse parses a chord label under the fixed token grammar: root letter,
// optional accidental, optional quality token, optional extension degree,
// zero or more alteration tokens, zero or more add/omit tokens, optional
// slash bass. Anything else, including parenthesized tension lists like
// "C7(b9,#11)", is a parse error.
func Parse(label string) (*model.ChordSymbol, error) {
	trimmed := strings.TrimSpace(label)
	if IsRest(trimmed) {
		return nil, &ParseError{Label: label, Msg: "rest label is not a chord"}
	}
	p := &parser{label: trimmed}
	sym := &model.ChordSymbol{BassPC: -1}

	root, pc, perr := p.pitchName()
	if perr != nil {
		return nil, perr
	}
	sym.Root = root
	sym.RootPC = pc

	// Quality. Longest tokens first so "maj"/"min" win over "m".
	switch {
	case p.eat("maj"):
		sym.Quality = model.QualityMajor
	case p.eat("min"):
		sym.Quality = model.QualityMinor
	case p.eat("dim"):
		sym.Quality = model.QualityDiminished
	case p.eat("aug"):
		sym.Quality = model.QualityAugmented
	case p.eat("sus4"):
		sym.Quality = model.QualitySus4
	case p.eat("sus2"):
		sym.Quality = model.QualitySus2
	case p.eat("m"):
		sym.Quality = model.QualityMinor
	case p.eat("5"):
		sym.Quality = model.QualityPower
	}

	for _, ext := range extensionTokens {
		if p.eat(ext) {
			sym.Extension, _ = strconv.Atoi(ext)
			break
		}
	}
	if sym.Quality == "" {
		if sym.Extension != 0 {
			sym.Quality = model.QualityDominant
		} else {
			sym.Quality = model.QualityMajor
		}
	}

alterations:
	for {
		r := p.rest()
		if len(r) < 2 || (r[0] != 'b' && r[0] != '#') {
			break
		}
		for _, deg := range alterationDegrees {
			if strings.HasPrefix(r[1:], deg) {
				sym.Alterations = append(sym.Alterations, r[:1+len(deg)])
				p.pos += 1 + len(deg)
				continue alterations
			}
		}
		break
	}

addOmit:
	for {
		switch {
		case p.eat("add"):
			deg, perr := p.degree("add")
			if perr != nil {
				return nil, perr
			}
			sym.Added = append(sym.Added, deg)
		case p.eat("omit"):
			deg, perr := p.degree("omit")
			if perr != nil {
				return nil, perr
			}
			if deg != 3 && deg != 5 {
				return nil, p.fail("omit supports degrees 3 and 5 only")
			}
			sym.Omitted = append(sym.Omitted, deg)
		default:
			break addOmit
		}
	}

	if p.eat("/") {
		bass, bpc, perr := p.pitchName()
		if perr != nil {
			return nil, perr
		}
		sym.Bass = bass
		sym.BassPC = bpc
	}

	if p.pos != len(p.label) {
		return nil, p.fail(fmt.Sprintf("unexpected %q", p.rest()))
	}
	return sym, nil
}
