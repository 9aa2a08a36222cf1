package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// PlayerResponse — игрок из API.
type PlayerResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	ExecPath   string  `json:"exec_path"`
	Mu         float64 `json:"mu"`
	Sigma      float64 `json:"sigma"`
	Skill      float64 `json:"skill"`
	MatchCount int     `json:"match_count"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// MatchResponse — матч из API.
type MatchResponse struct {
	ID           string   `json:"id"`
	PlayerIDs    []string `json:"player_ids"`
	MapWidth     int      `json:"map_width"`
	MapHeight    int      `json:"map_height"`
	MapSeed      int64    `json:"map_seed"`
	TimeLimitSec float64  `json:"time_limit_sec"`
	KeepReplay   bool     `json:"keep_replay"`
	KeepLogs     bool     `json:"keep_logs"`
	Status       string   `json:"status"`
	ReturnCode   *int     `json:"return_code,omitempty"`
	Ranks        []int    `json:"ranks,omitempty"`
	Scores       []int    `json:"scores,omitempty"`
	ReplayFile   string   `json:"replay_file,omitempty"`
	MapGenerator string   `json:"map_generator,omitempty"`
	Error        string   `json:"error,omitempty"`
	StartedAt    string   `json:"started_at,omitempty"`
	FinishedAt   string   `json:"finished_at,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// LeaderboardEntry — строка таблицы лидеров из API.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Mu         float64 `json:"mu"`
	Sigma      float64 `json:"sigma"`
	Skill      float64 `json:"skill"`
	MatchCount int     `json:"match_count"`
}

// --- Request types ---

// CreatePlayerRequest — регистрация игрока.
type CreatePlayerRequest struct {
	Name     string `json:"name"`
	ExecPath string `json:"exec_path"`
}

// CreateMatchRequest — создание матча.
type CreateMatchRequest struct {
	PlayerIDs    []string `json:"player_ids"`
	MapWidth     int      `json:"map_width,omitempty"`
	MapHeight    int      `json:"map_height,omitempty"`
	MapSeed      int64    `json:"map_seed,omitempty"`
	TimeLimitSec float64  `json:"time_limit_sec,omitempty"`
	KeepReplay   bool     `json:"keep_replay,omitempty"`
	KeepLogs     bool     `json:"keep_logs,omitempty"`
}

// ListMatchesOpts — параметры фильтрации матчей.
type ListMatchesOpts struct {
	Status string
	Limit  int
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Gauntlet API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Players ---

// ListPlayers возвращает всех игроков.
func (c *Client) ListPlayers() ([]PlayerResponse, error) {
	var players []PlayerResponse
	err := c.list("/api/v1/players", nil, &players)
	return players, err
}

// CreatePlayer регистрирует нового игрока.
func (c *Client) CreatePlayer(name, execPath string) (*PlayerResponse, error) {
	body := CreatePlayerRequest{Name: name, ExecPath: execPath}
	var player PlayerResponse
	err := c.post("/api/v1/players", body, &player)
	return &player, err
}

// GetPlayer возвращает игрока по ID.
func (c *Client) GetPlayer(id string) (*PlayerResponse, error) {
	var player PlayerResponse
	err := c.get("/api/v1/players/"+id, &player)
	return &player, err
}

// --- Matches ---

// ListMatches возвращает список матчей с фильтрацией.
func (c *Client) ListMatches(opts ListMatchesOpts) ([]MatchResponse, error) {
	params := url.Values{}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}

	var matches []MatchResponse
	err := c.list("/api/v1/matches", params, &matches)
	return matches, err
}

// CreateMatch создаёт матч и ставит его в очередь на исполнение.
func (c *Client) CreateMatch(req CreateMatchRequest) (*MatchResponse, error) {
	var match MatchResponse
	err := c.post("/api/v1/matches", req, &match)
	return &match, err
}

// GetMatch возвращает матч по ID.
func (c *Client) GetMatch(id string) (*MatchResponse, error) {
	var match MatchResponse
	err := c.get("/api/v1/matches/"+id, &match)
	return &match, err
}

// --- Leaderboard ---

// Leaderboard возвращает таблицу лидеров. limit=0 — лимит сервера по умолчанию.
func (c *Client) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	var entries []LeaderboardEntry
	err := c.list("/api/v1/leaderboard", params, &entries)
	return entries, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) list(path string, params url.Values, result any) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
