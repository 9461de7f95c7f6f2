package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/venuelab/ticketfns/internal/model"
	"github.com/venuelab/ticketfns/internal/payments"
)

// PaymentIntent answers API Gateway requests by creating a payment
// authorization with the processor and returning its client secret.
// Failures are not logged here; platform logging covers the invocation.
type PaymentIntent struct {
	authorizer payments.Authorizer
}

func NewPaymentIntent(authorizer payments.Authorizer) *PaymentIntent {
	return &PaymentIntent{authorizer: authorizer}
}

// Handle accepts any method that carries a body. Every failure — malformed
// body or processor rejection — becomes a 400 with the failure's message;
// there are no error categories.
func (h *PaymentIntent) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var in model.PaymentRequest
	if err := json.Unmarshal([]byte(req.Body), &in); err != nil {
		return errorResponse(err), nil
	}

	secret, err := h.authorizer.CreateIntent(ctx, in.Amount, in.Currency)
	if err != nil {
		return errorResponse(err), nil
	}

	return jsonResponse(http.StatusOK, model.PaymentResponse{ClientSecret: secret}), nil
}

func errorResponse(err error) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
}

func jsonResponse(status int, body interface{}) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		// Both response shapes marshal unconditionally.
		panic(err)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(payload),
	}
}
