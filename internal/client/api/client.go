// FILE: internal/client/api/client.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"llmchess/internal/client/display"
	"llmchess/internal/core"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	url := c.BaseURL + path

	// Prepare body
	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
		bodyStr = string(jsonData)
	}

	// Create request
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return err
	}

	// Set headers
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Display request in verbose mode
	if c.Verbose {
		fmt.Printf("\n%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
		if bodyStr != "" {
			var prettyBody interface{}
			json.Unmarshal([]byte(bodyStr), &prettyBody)
			prettyJSON, _ := json.MarshalIndent(prettyBody, "", "  ")
			fmt.Printf("%sRequest Body:%s\n%s\n", display.Cyan, display.Reset, string(prettyJSON))
		}
	}

	// Execute request
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Read response
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if c.Verbose {
		statusColor := display.Green
		if resp.StatusCode >= 400 {
			statusColor = display.Red
		}
		fmt.Printf("%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)
		if len(respBody) > 0 {
			var prettyResp interface{}
			if err := json.Unmarshal(respBody, &prettyResp); err == nil {
				prettyJSON, _ := json.MarshalIndent(prettyResp, "", "  ")
				fmt.Printf("%sResponse Body:%s\n%s\n", display.Cyan, display.Reset, string(prettyJSON))
			}
		}
	}

	// Parse error response
	if resp.StatusCode >= 400 {
		var errResp core.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			if errResp.Details != "" {
				return fmt.Errorf("%s: %s", errResp.Error, errResp.Details)
			}
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	// Parse success response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("response parse error: %w", err)
		}
	}

	return nil
}

// API Methods

func (c *Client) Health() (map[string]interface{}, error) {
	var resp map[string]interface{}
	err := c.doRequest("GET", "/health", nil, &resp)
	return resp, err
}

func (c *Client) CreateMatch(req *core.CreateMatchRequest) (*core.MatchResponse, error) {
	var resp core.MatchResponse
	err := c.doRequest("POST", "/api/v1/matches", req, &resp)
	return &resp, err
}

func (c *Client) ListMatches() ([]core.MatchResponse, error) {
	var resp []core.MatchResponse
	err := c.doRequest("GET", "/api/v1/matches", nil, &resp)
	return resp, err
}

func (c *Client) GetMatch(matchID string) (*core.MatchResponse, error) {
	var resp core.MatchResponse
	err := c.doRequest("GET", "/api/v1/matches/"+matchID, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteMatch(matchID string) error {
	return c.doRequest("DELETE", "/api/v1/matches/"+matchID, nil, nil)
}

func (c *Client) GetBoard(matchID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest("GET", "/api/v1/matches/"+matchID+"/board", nil, &resp)
	return &resp, err
}

func (c *Client) GetHistory(matchID string) (*core.HistoryResponse, error) {
	var resp core.HistoryResponse
	err := c.doRequest("GET", "/api/v1/matches/"+matchID+"/history", nil, &resp)
	return &resp, err
}

func (c *Client) StartMatch(matchID string) (*core.MatchResponse, error) {
	return c.lifecycle(matchID, "start")
}

func (c *Client) PauseMatch(matchID string) (*core.MatchResponse, error) {
	return c.lifecycle(matchID, "pause")
}

func (c *Client) ResumeMatch(matchID string) (*core.MatchResponse, error) {
	return c.lifecycle(matchID, "resume")
}

func (c *Client) ResetMatch(matchID string) (*core.MatchResponse, error) {
	return c.lifecycle(matchID, "reset")
}

func (c *Client) lifecycle(matchID, action string) (*core.MatchResponse, error) {
	var resp core.MatchResponse
	err := c.doRequest("POST", "/api/v1/matches/"+matchID+"/"+action, nil, &resp)
	return &resp, err
}

// Director operations

func (c *Client) ForceMove(matchID, side, move string) (*core.MatchResponse, error) {
	req := &core.ForceMoveRequest{Move: move, Side: side}
	var resp core.MatchResponse
	err := c.doRequest("POST", "/api/v1/matches/"+matchID+"/director/move", req, &resp)
	return &resp, err
}

func (c *Client) SkipTurn(matchID string) (*core.MatchResponse, error) {
	var resp core.MatchResponse
	err := c.doRequest("POST", "/api/v1/matches/"+matchID+"/director/skip", nil, &resp)
	return &resp, err
}

func (c *Client) OverridePrompt(matchID, text string) (*core.MatchResponse, error) {
	req := &core.OverridePromptRequest{Text: text}
	var resp core.MatchResponse
	err := c.doRequest("POST", "/api/v1/matches/"+matchID+"/director/prompt", req, &resp)
	return &resp, err
}

func (c *Client) SetPosition(matchID, fen string) (*core.MatchResponse, error) {
	req := &core.SetPositionRequest{FEN: fen}
	var resp core.MatchResponse
	err := c.doRequest("POST", "/api/v1/matches/"+matchID+"/director/position", req, &resp)
	return &resp, err
}

func (c *Client) Adjudicate(matchID, outcome string) (*core.MatchResponse, error) {
	req := &core.AdjudicateRequest{Outcome: outcome}
	var resp core.MatchResponse
	err := c.doRequest("POST", "/api/v1/matches/"+matchID+"/director/adjudicate", req, &resp)
	return &resp, err
}
