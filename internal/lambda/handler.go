// Package lambda exposes the profile query as an API Gateway proxy handler.
package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/gateway"
	"github.com/naka-gawa/github-profile/internal/usecase"
)

// Handler answers API Gateway proxy events.
type Handler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// NewHandler returns a Lambda handler that serves the same payloads as the HTTP endpoint.
func NewHandler(aggregator *usecase.Aggregator, l *zap.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		username := aggregator.ResolveUsername(req.QueryStringParameters[usecase.UsernameParam])
		log := l.With(
			zap.String("request_id", req.RequestContext.RequestID),
			zap.String("username", username),
		)

		report, err := aggregator.Aggregate(ctx, username)
		if err != nil {
			var upstream *gateway.UpstreamError
			if errors.As(err, &upstream) {
				log.Warn("upstream request failed", zap.Int("upstream_status", upstream.StatusCode), zap.Error(err))
			} else {
				log.Error("failed to aggregate profile", zap.Error(err))
			}
			return respond(http.StatusInternalServerError, errorResponse{Error: err.Error()}, nil)
		}

		return respond(http.StatusOK, report, map[string]string{"Cache-Control": usecase.CacheControl})
	}
}

// errorResponse matches the HTTP endpoint's failure body.
type errorResponse struct {
	Error string `json:"error"`
}

func respond(status int, body any, headers map[string]string) (events.APIGatewayProxyResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to marshal response: %w", err)
	}
	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		h[k] = v
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    h,
		Body:       string(data),
	}, nil
}
