// Package rest is the HTTP client of the consult CLI.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	apiconsult "github.com/sklowrylaw/website/pkg/api/types/consultations"
	apierr "github.com/sklowrylaw/website/pkg/api/types/errors"
)

type Client struct {
	server     string
	httpclient *http.Client
}

// New builds a client for the site backend at server, e.g.
// "https://sklowrylaw.com".
func New(server string) *Client {
	return &Client{
		server:     strings.TrimSuffix(server, "/"),
		httpclient: &http.Client{},
	}
}

func (c *Client) apipath(path string) string {
	return c.server + "/api/" + path
}

// SubmitConsultation posts the answers of a finished conversation and
// returns the request id the backend assigned.
func (c *Client) SubmitConsultation(ctx context.Context, answers map[string]string) (string, error) {
	payload := apiconsult.IntakeRequest{
		Name:        answers["name"],
		Email:       answers["email"],
		Phone:       answers["phone"],
		ServiceType: answers["serviceType"],
		Message:     answers["details"],
		Timeline:    answers["timeline"],
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("consultation-requests"), bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server rejected the request: %s", serverMessage(resp))
	}

	ack := apiconsult.IntakeResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("unexpected response (status code = %d): %w", resp.StatusCode, err)
	}
	if !ack.Success {
		return "", fmt.Errorf("server did not accept the request: %s", ack.Message)
	}
	return strconv.Itoa(ack.RequestId), nil
}

// serverMessage digs the reason out of an error payload, falling back
// to the bare status.
func serverMessage(resp *http.Response) string {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Status
	}

	payload := apierr.ErrorResponse{}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message.Reason != "" {
		return payload.Message.String()
	}
	return resp.Status
}
