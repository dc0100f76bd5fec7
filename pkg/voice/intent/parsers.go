package intent

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	inDaysPattern  = regexp.MustCompile(`\bin\s+(\d+)\s+days?\b`)
	isoDatePattern = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dayPattern     = regexp.MustCompile(`^(\d{1,2})(st|nd|rd|th)?$`)
	amountPattern  = regexp.MustCompile(`^\d*\.?\d+$`)
)

// parseProductName aceita qualquer texto com pelo menos 2 caracteres e o
// devolve em Title Case, sem validar contra um catálogo
func parseProductName(raw string) (string, bool) {
	name := strings.Join(strings.Fields(raw), " ")
	if len([]rune(name)) < 2 {
		return "", false
	}
	return cases.Title(language.English).String(name), true
}

// Maior quantidade aceita; a coluna quantity é INTEGER
const maxQuantity = math.MaxInt32

// parseQuantity lê o primeiro número embutido ou, na falta dele, um número
// por extenso. Zero ou ausente é rejeitado.
func parseQuantity(u utterance) (int, bool) {
	if n, ok := u.firstNumber(); ok {
		return n, n > 0 && n <= maxQuantity
	}
	for _, tok := range u.tokens {
		if n, ok := numberWords[tok]; ok {
			return n, true
		}
	}
	return 0, false
}

// parseExpiryDate resolve uma data de validade relativa ou absoluta.
// Ordem: today/tomorrow, next week/in a week, "in N days", data ISO,
// nome do mês + dia (rolando para o ano seguinte se já passou).
func parseExpiryDate(u utterance, today Date) (Date, bool) {
	switch {
	case u.has("today"):
		return today, true
	case u.has("tomorrow"):
		return today.AddDays(1), true
	case u.has("next week"), u.has("in a week"):
		return today.AddDays(7), true
	}

	if m := inDaysPattern.FindStringSubmatch(u.joined()); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return today.AddDays(n), true
		}
	}

	if m := isoDatePattern.FindStringSubmatch(u.lower); m != nil {
		if d, err := ParseDate(m[0]); err == nil {
			return d, true
		}
	}

	return parseMonthDay(u, today)
}

func parseMonthDay(u utterance, today Date) (Date, bool) {
	var month time.Month
	for _, tok := range u.tokens {
		if m, ok := monthNames[tok]; ok {
			month = m
			break
		}
	}
	if month == 0 {
		return Date{}, false
	}

	day := 0
	for _, tok := range u.tokens {
		if m := dayPattern.FindStringSubmatch(tok); m != nil {
			day, _ = strconv.Atoi(m[1])
			break
		}
	}
	if day < 1 || day > 31 {
		return Date{}, false
	}

	year := today.Time().Year()
	d := NewDate(year, month, day)
	if d.Time().Month() != month {
		// 31 de abril e afins
		return Date{}, false
	}
	if d.Before(today) {
		d = NewDate(year+1, month, day)
		if d.Time().Month() != month {
			// 29 de fevereiro sem ano bissexto
			return Date{}, false
		}
	}
	return d, true
}

// parsePrice retorna nil para "skip"/"no"/"no price" e também quando nenhum
// número é encontrado; o passo de preço nunca repete a pergunta
func parsePrice(u utterance) *float64 {
	if skipsPrice(u) {
		return nil
	}

	cleaned := u.lower
	for _, w := range currencyWords {
		cleaned = strings.ReplaceAll(cleaned, w, " ")
	}
	for _, tok := range strings.Fields(cleaned) {
		tok = strings.TrimRight(strings.Trim(tok, ",;:/-()"), ".")
		if !amountPattern.MatchString(tok) {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

func skipsPrice(u utterance) bool {
	return u.equalsAny(skipPricePhrases) || u.has("no price") || u.has("skip")
}

// expiryWindow retorna a janela de validade pedida na busca, em dias
func expiryWindow(u utterance) (int, bool) {
	for _, w := range expiryWindows {
		if u.has(w.phrase) {
			return w.days, true
		}
	}
	return 0, false
}

// roundOrderQuantity arredonda para baixo ao múltiplo de 10 mais próximo,
// com mínimo de 10, e limita ao disponível (múltiplo de 10 ou o valor exato)
func roundOrderQuantity(requested, available int) int {
	q := requested / 10 * 10
	if q < 10 {
		q = 10
	}
	if q > available {
		q = available / 10 * 10
		if q == 0 {
			q = available
		}
	}
	return q
}
