package model

import (
	"context"
	"fmt"
	"time"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"github.com/go-resty/resty/v2"
)

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Category string `json:"Category"`
	Cuisine  string `json:"Cuisine"`
}

type remoteError struct {
	Error string `json:"error"`
}

// RemoteClient asks a model server to vectorize and predict in one call.
type RemoteClient struct {
	client *resty.Client
}

func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &RemoteClient{client: client}
}

func (c *RemoteClient) Classify(ctx context.Context, text string) (domain.Prediction, error) {
	var out classifyResponse
	var apiErr remoteError

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(classifyRequest{Text: text}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/classify")
	if err != nil {
		return domain.Prediction{}, &InferenceError{Op: "remote", Msg: "request failed", Err: err}
	}
	if resp.IsError() {
		return domain.Prediction{}, &InferenceError{
			Op:  "remote",
			Msg: fmt.Sprintf("classifier returned %d: %s", resp.StatusCode(), apiErr.Error),
		}
	}
	if out.Category == "" || out.Cuisine == "" {
		return domain.Prediction{}, &InferenceError{Op: "remote", Msg: "empty prediction"}
	}
	return domain.Prediction{Category: out.Category, Cuisine: out.Cuisine}, nil
}
