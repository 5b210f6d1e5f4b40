package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Request is a generic struct that contains information about how to make a network request
type Request struct {
	method          string
	url             string
	headers         map[string]string
	queryParameters map[string][]string
}

// HTTPError is returned when the upstream answers with a non-2xx status.
// Handlers mirror StatusCode and Body back to their caller.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return "upstream request failed with status code " + strconv.Itoa(e.StatusCode) + " " + string(e.Body)
}

// MakeRequest makes a network request and unmarshalls the data
func MakeRequest(ctx context.Context, client *http.Client, request Request, responseObject interface{}) error {
	req, err := http.NewRequestWithContext(ctx, request.method, request.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for key, value := range request.headers {
		req.Header.Set(key, value)
	}

	queryParams := req.URL.Query()
	for key, value := range request.queryParameters {
		for _, queryValue := range value {
			queryParams.Add(key, queryValue)
		}
	}
	req.URL.RawQuery = queryParams.Encode()

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &HTTPError{StatusCode: res.StatusCode, Body: body}
	}

	if err := json.Unmarshal(body, responseObject); err != nil {
		return fmt.Errorf("parse response JSON: %w", err)
	}
	return nil
}
