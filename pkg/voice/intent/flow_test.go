package intent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContextEmptyIsInitial(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "{}"} {
		fc, err := DecodeContext([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, InitialContext(), fc, raw)
	}
}

func TestDecodeContextDefaultsVersionAndStage(t *testing.T) {
	fc, err := DecodeContext([]byte(`{"stage":"search_failed"}`))
	require.NoError(t, err)
	assert.Equal(t, ContextVersion, fc.Version)
	assert.Equal(t, StageSearchFailed, fc.Stage)
}

func TestDecodeContextRejectsForgedState(t *testing.T) {
	cases := map[string]string{
		"unknown field":       `{"stage":"initial","admin":true}`,
		"unknown stage":       `{"stage":"completed"}`,
		"future version":      `{"version":2,"stage":"initial"}`,
		"selection no items":  `{"stage":"awaiting_selection","results":[]}`,
		"confirm no item":     `{"stage":"confirm_order"}`,
		"snapshot without id": `{"stage":"confirm_order","selected_item":{"product_name":"Tomatoes","quantity":5}}`,
		"negative quantity":   `{"stage":"confirm_order","selected_item":{"id":"a","product_name":"Tomatoes","quantity":-1}}`,
		"wizard skipped name": `{"stage":"adding_stock","step":"quantity"}`,
		"wizard unknown step": `{"stage":"adding_stock","step":"colour"}`,
		"initial with data":   `{"stage":"initial","step":"price"}`,
		"bad date":            `{"stage":"adding_stock","step":"price","product_name":"Okra","quantity":5,"expiry_date":"tomorrow"}`,
		"not an object":       `[1,2,3]`,
	}
	for name, raw := range cases {
		_, err := DecodeContext([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidContext, name)
	}
}

func TestDecodeContextTooManyResults(t *testing.T) {
	results := make([]StockItem, maxResults+1)
	for i := range results {
		results[i] = stock(string(rune('a'+i)), "Tomatoes", 10, i)
	}
	raw, err := json.Marshal(FlowContext{Version: ContextVersion, Stage: StageAwaitingSelection, Results: results})
	require.NoError(t, err)

	_, err = DecodeContext(raw)
	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestContextSurvivesJSON(t *testing.T) {
	expiry := day(4)
	original := wizardContext(StepConfirm, StockDraft{
		ProductName: "Tomatoes",
		Quantity:    50,
		ExpiryDate:  &expiry,
		Price:       price(20),
	})

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"expiry_date":"2026-03-14"`)

	decoded, err := DecodeContext(raw)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
