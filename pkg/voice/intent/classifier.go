package intent

// Intent é a intenção escolhida para um turno
type Intent string

const (
	IntentContinueSelection    Intent = "continue_selection"
	IntentContinueConfirmation Intent = "continue_confirmation"
	IntentContinueWizard       Intent = "continue_wizard"
	IntentGreeting             Intent = "greeting"
	IntentStartAddWizard       Intent = "start_add_stock"
	IntentQuickAdd             Intent = "quick_add_stock"
	IntentSummary              Intent = "summary"
	IntentUrgency              Intent = "urgency"
	IntentSearch               Intent = "search"
	IntentOrderConfirmation    Intent = "order_confirmation"
	IntentPrice                Intent = "price"
	IntentCancel               Intent = "cancel"
	IntentHelp                 Intent = "help"
	IntentDefault              Intent = "default"
)

// rule é um par predicado → intenção. As regras são avaliadas em ordem e a
// primeira que casar vence; a ordem da lista faz parte do contrato.
type rule struct {
	intent Intent
	only   Role // vazio: vale para os dois papéis
	match  func(u utterance) bool
}

var rules = []rule{
	{intent: IntentGreeting, match: func(u utterance) bool {
		return u.equalsAny(greetingPhrases) && len(u.products()) == 0
	}},
	{intent: IntentStartAddWizard, only: RoleManager, match: func(u utterance) bool {
		return u.hasAny(addStockPhrases)
	}},
	{intent: IntentQuickAdd, only: RoleManager, match: func(u utterance) bool {
		_, hasNumber := u.firstNumber()
		return hasNumber && len(u.products()) > 0 && u.hasAny(addVerbs)
	}},
	{intent: IntentSummary, only: RoleManager, match: func(u utterance) bool {
		return u.hasAny(summaryWords)
	}},
	{intent: IntentUrgency, match: func(u utterance) bool {
		return u.hasAny(urgencyWords) || (len(u.products()) == 0 && u.hasAny(expiryTriggerWords))
	}},
	{intent: IntentSearch, match: func(u utterance) bool {
		return len(u.products()) > 0 || u.hasAny(searchVerbs)
	}},
	{intent: IntentOrderConfirmation, only: RoleMiddleman, match: func(u utterance) bool {
		return u.hasAny(affirmationWords)
	}},
	{intent: IntentPrice, match: func(u utterance) bool {
		return u.hasAny(priceWords)
	}},
	{intent: IntentCancel, match: func(u utterance) bool {
		return u.hasAny(cancelWords)
	}},
	{intent: IntentHelp, match: func(u utterance) bool {
		return u.hasAny(helpWords)
	}},
}

// Classify decide qual intenção trata o texto. Um estágio no meio de um
// fluxo tem prioridade absoluta sobre as regras de intenção.
func Classify(text string, stage Stage, role Role) Intent {
	switch stage {
	case StageAwaitingSelection:
		return IntentContinueSelection
	case StageConfirmOrder:
		return IntentContinueConfirmation
	case StageAddingStock:
		return IntentContinueWizard
	}
	return classify(newUtterance(text), role)
}

func classify(u utterance, role Role) Intent {
	for _, r := range rules {
		if r.only != "" && r.only != role {
			continue
		}
		if r.match(u) {
			return r.intent
		}
	}
	return IntentDefault
}
