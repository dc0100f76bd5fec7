package intent

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var digitPattern = regexp.MustCompile(`\d+`)

// utterance é o texto de um turno já normalizado para as heurísticas
type utterance struct {
	raw    string   // texto original, apenas aparado
	lower  string   // minúsculo e aparado
	tokens []string // palavras sem pontuação
	padded string   // tokens unidos por espaço, com espaço nas pontas
}

func newUtterance(raw string) utterance {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	return utterance{
		raw:    raw,
		lower:  lower,
		tokens: tokens,
		padded: " " + strings.Join(tokens, " ") + " ",
	}
}

// joined retorna o texto como uma única sequência de palavras
func (u utterance) joined() string {
	return strings.TrimSpace(u.padded)
}

// has verifica se a frase aparece como palavra(s) inteira(s) no texto
func (u utterance) has(phrase string) bool {
	return strings.Contains(u.padded, " "+phrase+" ")
}

// hasAny verifica se qualquer uma das frases aparece no texto
func (u utterance) hasAny(phrases []string) bool {
	for _, p := range phrases {
		if u.has(p) {
			return true
		}
	}
	return false
}

// equalsAny verifica se o texto inteiro é exatamente uma das frases
func (u utterance) equalsAny(phrases []string) bool {
	j := u.joined()
	for _, p := range phrases {
		if j == p {
			return true
		}
	}
	return false
}

// firstNumber retorna o primeiro número inteiro embutido no texto
func (u utterance) firstNumber() (int, bool) {
	m := digitPattern.FindString(u.lower)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// products retorna os produtos do léxico mencionados no texto, na ordem do léxico
func (u utterance) products() []product {
	var found []product
	for _, p := range products {
		if u.hasAny(p.words) {
			found = append(found, p)
		}
	}
	return found
}

// productWord retorna a palavra de produto como foi escrita pelo usuário
func (u utterance) productWord() (string, bool) {
	for _, tok := range u.tokens {
		for _, p := range products {
			for _, w := range p.words {
				if tok == w {
					return tok, true
				}
			}
		}
	}
	return "", false
}

// matchesProduct verifica se o nome do item casa com algum dos produtos
func matchesProduct(name string, ps []product) bool {
	lower := strings.ToLower(name)
	for _, p := range ps {
		if strings.Contains(lower, p.stem) {
			return true
		}
	}
	return false
}
