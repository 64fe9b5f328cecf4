package jamf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	_defaultCommandPath = "/JSSResource/mobiledevicecommands/command"
	_defaultTimeout     = 30 * time.Second
)

// Credentials authenticate every request of one batch run. They are held in
// memory only and passed by value.
type Credentials struct {
	Username string
	Password string
}

// CommandError carries the HTTP status and the payload that was sent, so the
// caller can log the offending document and continue with the batch.
type CommandError struct {
	StatusCode int
	Payload    []byte
	Err        error
}

func (e *CommandError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("jamf command failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("jamf command failed: %v", e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

type ClientOpts struct {
	BaseURL     string
	CommandPath string
	Timeout     time.Duration
	Credentials Credentials
}

// Client posts mobile device command documents to the Jamf Pro classic API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	commandPath string
	credentials Credentials
}

func NewClient(opts ClientOpts) *Client {
	commandPath := opts.CommandPath
	if commandPath == "" {
		commandPath = _defaultCommandPath
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = _defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		commandPath: commandPath,
		credentials: opts.Credentials,
	}
}

// SendCommand posts one command document and returns the HTTP status code.
// Any non-2xx response or transport failure is returned as a *CommandError;
// a single failed device must never stop the rest of the batch, so nothing
// here is fatal to the caller.
func (c *Client) SendCommand(ctx context.Context, payload []byte) (int, error) {
	url := c.baseURL + c.commandPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, &CommandError{Payload: payload, Err: fmt.Errorf("creating HTTP request: %w", err)}
	}

	req.SetBasicAuth(c.credentials.Username, c.credentials.Password)
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &CommandError{Payload: payload, Err: fmt.Errorf("sending HTTP request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &CommandError{StatusCode: resp.StatusCode, Payload: payload, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &CommandError{
			StatusCode: resp.StatusCode,
			Payload:    payload,
			Err:        fmt.Errorf("jamf API error: status %d, body: %s", resp.StatusCode, string(body)),
		}
	}

	return resp.StatusCode, nil
}
