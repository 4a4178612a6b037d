package camera

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

// postJSON sends a JSON-encoded POST request and decodes the JSON
// response into V. Any non-2xx status is surfaced as an error; there
// is no retry.
func postJSON[V any](client *http.Client, url string, body any, headers map[string]string) (*V, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http status %d for url %s", resp.StatusCode, req.URL.String())
	}

	t, _, err := mime.ParseMediaType(resp.Header.Get("content-type"))
	if err != nil || t != "application/json" {
		return nil, fmt.Errorf("unexpected content-type: %q", resp.Header.Get("content-type"))
	}

	var parsed V
	err = json.NewDecoder(resp.Body).Decode(&parsed)
	return &parsed, err
}
