package intent

import "time"

// product liga as palavras reconhecidas no texto ao radical usado para
// casar com o nome dos itens de estoque
type product struct {
	stem  string
	words []string
}

var products = []product{
	{stem: "tomato", words: []string{"tomato", "tomatoes"}},
	{stem: "potato", words: []string{"potato", "potatoes"}},
	{stem: "onion", words: []string{"onion", "onions"}},
	{stem: "carrot", words: []string{"carrot", "carrots"}},
	{stem: "cabbage", words: []string{"cabbage", "cabbages"}},
	{stem: "cauliflower", words: []string{"cauliflower", "cauliflowers"}},
	{stem: "spinach", words: []string{"spinach"}},
	{stem: "lettuce", words: []string{"lettuce"}},
	{stem: "cucumber", words: []string{"cucumber", "cucumbers"}},
	{stem: "pepper", words: []string{"pepper", "peppers", "capsicum"}},
	{stem: "chilli", words: []string{"chilli", "chillies", "chili", "chilies"}},
	{stem: "bean", words: []string{"bean", "beans"}},
	{stem: "pea", words: []string{"peas"}},
	{stem: "brinjal", words: []string{"brinjal", "brinjals", "eggplant", "eggplants"}},
	{stem: "okra", words: []string{"okra"}},
	{stem: "apple", words: []string{"apple", "apples"}},
	{stem: "banana", words: []string{"banana", "bananas"}},
	{stem: "mango", words: []string{"mango", "mangoes", "mangos"}},
	{stem: "orange", words: []string{"orange", "oranges"}},
	{stem: "grape", words: []string{"grape", "grapes"}},
	{stem: "papaya", words: []string{"papaya", "papayas"}},
	{stem: "guava", words: []string{"guava", "guavas"}},
	{stem: "pineapple", words: []string{"pineapple", "pineapples"}},
	{stem: "watermelon", words: []string{"watermelon", "watermelons"}},
	{stem: "strawberr", words: []string{"strawberry", "strawberries"}},
	{stem: "lemon", words: []string{"lemon", "lemons"}},
	{stem: "milk", words: []string{"milk"}},
	{stem: "curd", words: []string{"curd", "yogurt", "yoghurt"}},
	{stem: "paneer", words: []string{"paneer"}},
	{stem: "cheese", words: []string{"cheese"}},
	{stem: "butter", words: []string{"butter"}},
	{stem: "egg", words: []string{"egg", "eggs"}},
	{stem: "bread", words: []string{"bread"}},
	{stem: "fish", words: []string{"fish"}},
	{stem: "chicken", words: []string{"chicken"}},
	{stem: "meat", words: []string{"meat", "mutton"}},
	{stem: "flower", words: []string{"flower", "flowers"}},
}

// Frases de saudação (correspondência exata do texto inteiro)
var greetingPhrases = []string{
	"hello", "hi", "hey", "start", "hello there", "hi there", "hey there",
	"good morning", "good afternoon", "good evening", "namaste",
}

// Gatilhos explícitos do assistente de cadastro (somente vendedor)
var addStockPhrases = []string{
	"add stock", "add new stock", "add item", "add new item", "new item",
	"add product", "add new product", "new product", "add inventory", "new stock",
	"list new item", "create item", "create stock",
}

// Verbos que, junto de um produto e um número, disparam o cadastro rápido
var addVerbs = []string{"add", "added", "create", "new", "list", "upload", "put"}

var summaryWords = []string{
	"summary", "overview", "status", "report", "dashboard", "how many",
	"my stock", "my inventory", "inventory", "stock level", "stock levels",
}

var urgencyWords = []string{
	"urgent", "urgently", "urgency", "expire", "expires", "expired", "expiry",
	"about to expire", "near expiry", "spoil", "spoiling", "going bad", "perish",
}

// Frases de validade que só indicam urgência quando nenhum produto é citado;
// com produto a busca aplica a janela de validade
var expiryTriggerWords = []string{
	"expiring", "expiring soon", "soon", "going off", "goes off",
}

var searchVerbs = []string{
	"search", "find", "show", "looking for", "look for", "need", "want", "buy",
	"get", "available", "browse", "list", "what do you have", "anything",
}

var affirmationWords = []string{
	"yes", "yeah", "yep", "yup", "sure", "ok", "okay", "confirm", "confirmed",
	"go ahead", "proceed", "place order", "place the order", "order it", "do it",
	"correct", "right", "please do",
}

var cancelWords = []string{
	"no", "nope", "cancel", "stop", "abort", "quit", "never mind", "nevermind",
	"forget it", "exit",
}

var priceWords = []string{
	"price", "prices", "cost", "costs", "cheap", "cheapest", "cheaper",
	"how much", "rate", "rates", "affordable", "lowest",
}

var helpWords = []string{
	"help", "what can you do", "how does this work", "how do i", "options", "commands",
}

// Frases que pulam o passo de preço do assistente
var skipPricePhrases = []string{"skip", "no", "no price", "none", "not now", "later"}

// Janela de validade (em dias) pedida na busca. A ordem importa:
// "this week" é verificado antes de "week".
var expiryWindows = []struct {
	phrase string
	days   int
}{
	{"today", 1},
	{"tomorrow", 2},
	{"this week", 7},
	{"week", 7},
	{"soon", 5},
	{"expiring", 5},
}

// Palavras de seleção por posição na lista (índice base 0)
var ordinalWords = map[string]int{
	"1": 0, "one": 0, "first": 0, "1st": 0,
	"2": 1, "two": 1, "second": 1, "2nd": 1,
	"3": 2, "three": 2, "third": 2, "3rd": 2,
	"4": 3, "four": 3, "fourth": 3, "4th": 3,
	"5": 4, "five": 4, "fifth": 4, "5th": 4,
}

// Números por extenso aceitos no passo de quantidade
var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50, "hundred": 100,
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Símbolos e palavras de moeda removidos antes de ler um preço
var currencyWords = []string{
	"₹", "$", "€", "£", "rs.", "rs", "inr", "usd", "rupees", "rupee", "dollars", "dollar",
	"per kg", "/kg", "per unit", "/unit", "each",
}
