package middleware

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	OrderID  string `json:"order_id" binding:"required,uuid"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
	Type     string `json:"type" binding:"omitempty,oneof=REFUND EXCHANGE"`
}

// bindJSON runs a gin JSON bind against bindTarget and returns the binding error
func bindJSON(t *testing.T, body string) error {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	return c.ShouldBindJSON(&target)
}

func TestValidationMessage(t *testing.T) {
	SetupValidator()

	t.Run("reports the json field name for a missing field", func(t *testing.T) {
		err := bindJSON(t, `{"quantity": 1}`)
		require.Error(t, err)

		field, message := ValidationMessage(err)
		assert.Equal(t, "order_id", field)
		assert.Equal(t, "This field is required", message)
	})

	t.Run("reports uuid format violations", func(t *testing.T) {
		err := bindJSON(t, `{"order_id": "not-a-uuid", "quantity": 1}`)
		require.Error(t, err)

		field, message := ValidationMessage(err)
		assert.Equal(t, "order_id", field)
		assert.Equal(t, "Invalid UUID format", message)
	})

	t.Run("reports range violations with the bound", func(t *testing.T) {
		err := bindJSON(t, `{"order_id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "quantity": -3}`)
		require.Error(t, err)

		field, message := ValidationMessage(err)
		assert.Equal(t, "quantity", field)
		assert.Equal(t, "Must be greater than 0", message)
	})

	t.Run("reports oneof with the allowed values", func(t *testing.T) {
		err := bindJSON(t, `{"order_id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "quantity": 1, "type": "STORE_CREDIT"}`)
		require.Error(t, err)

		field, message := ValidationMessage(err)
		assert.Equal(t, "type", field)
		assert.Equal(t, "Must be one of: REFUND EXCHANGE", message)
	})

	t.Run("passes non-validator errors through verbatim", func(t *testing.T) {
		field, message := ValidationMessage(errors.New("unexpected EOF"))
		assert.Empty(t, field)
		assert.Equal(t, "unexpected EOF", message)
	})

	t.Run("malformed JSON yields a syntax message, not a panic", func(t *testing.T) {
		err := bindJSON(t, `{"order_id": `)
		require.Error(t, err)

		field, message := ValidationMessage(err)
		assert.Empty(t, field)
		assert.NotEmpty(t, message)
	})
}
