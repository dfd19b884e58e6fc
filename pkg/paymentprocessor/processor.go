package paymentprocessor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/whatssound/tipservice/pkg/httpclient"
)

const (
	ChargeEndpoint = "/v1/charges"
	RefundEndpoint = "/v1/refunds"
)

type Processor interface {
	Charge(ctx context.Context, request ChargeRequest) (Response, error)
	Refund(ctx context.Context, request RefundRequest) (Response, error)
}

type processor struct {
	client httpclient.HTTPClient
	config Config
}

func NewProcessor(cfg Config, client httpclient.HTTPClient) Processor {
	return &processor{config: cfg, client: client}
}

func (p *processor) Charge(ctx context.Context, request ChargeRequest) (Response, error) {
	return p.post(ctx, ChargeEndpoint, request)
}

func (p *processor) Refund(ctx context.Context, request RefundRequest) (Response, error) {
	return p.post(ctx, RefundEndpoint, request)
}

func (p *processor) post(ctx context.Context, endpoint string, payload any) (Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return Response{}, fmt.Errorf("encoding error: %w", err)
	}

	resp, err := p.client.Post(ctx, p.config.BaseURL+endpoint, &buf, p.headers())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Response{}, ErrTimeout
		}

		return Response{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, MapStatusToError(resp.StatusCode)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("decoding error: %w", err)
	}

	return response, nil
}

func (p *processor) headers() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	if p.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + p.config.APIKey
	}

	return headers
}
