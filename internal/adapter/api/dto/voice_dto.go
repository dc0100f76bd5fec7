package dto

import (
	"encoding/json"

	"github.com/hugohenrick/greenchain/pkg/voice/intent"
)

// VoiceQueryRequest representa um turno de conversa com o agente.
// user_id e role são opcionais; quando informados devem coincidir com o token.
type VoiceQueryRequest struct {
	UserID  string          `json:"user_id"`
	Role    string          `json:"role"`
	Text    string          `json:"text" binding:"required"`
	Context json.RawMessage `json:"context" swaggertype:"object"`
}

// VoiceQueryResponse é a resposta de um turno
type VoiceQueryResponse struct {
	Response string             `json:"response"`
	Action   string             `json:"action"`
	Data     interface{}        `json:"data,omitempty"`
	Order    *intent.OrderRef   `json:"order,omitempty"`
	Context  intent.FlowContext `json:"context" swaggertype:"object"`
}

// ToVoiceQueryResponse converte a resposta do agente
func ToVoiceQueryResponse(r *intent.Reply) VoiceQueryResponse {
	return VoiceQueryResponse{
		Response: r.Response,
		Action:   string(r.Action),
		Data:     r.Data,
		Order:    r.Order,
		Context:  r.Context,
	}
}

// VoiceStartRequest representa o pedido de exportação avaliado pelo agente
type VoiceStartRequest struct {
	BuyerID          string `json:"buyer_id" binding:"required"`
	QuantityNeeded   int    `json:"quantity_needed" binding:"required,gt=0"`
	DeliveryTimeDays int    `json:"delivery_time_days" binding:"gte=0"`
}

// VoiceStartResponse é a decisão do agente para o pedido de exportação
type VoiceStartResponse struct {
	Agent        string `json:"agent"`
	Question     string `json:"question"`
	Decision     string `json:"decision"`
	PaymentTerms string `json:"payment_terms"`
}
