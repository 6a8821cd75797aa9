// Package highscore 远程排行榜服务
//
// 服务只有两个接口：
//   - GET  {base}/get-highscores  返回 {"highscores":[{"name":..,"score":..}]}
//   - POST {base}/save-highscore  表单字段 name、score
//
// 每次请求只尝试一次，不重试。失败只影响界面，不影响模拟状态。
package highscore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Entry 排行榜条目
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Service 排行榜服务
type Service interface {
	FetchHighScores(ctx context.Context) ([]Entry, error)
	SaveHighScore(ctx context.Context, name string, score int) error
}

// Client 基于 HTTP 的排行榜客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建客户端
// timeout <= 0 时不设超时（只受 ctx 控制）
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type highScoreList struct {
	Highscores []Entry `json:"highscores"`
}

// FetchHighScores 获取排行榜
func (c *Client) FetchHighScores(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get-highscores", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch high scores: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to fetch high scores: %w", err)
	}

	var list highScoreList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode high scores: %w", err)
	}
	return list.Highscores, nil
}

// SaveHighScore 提交成绩
func (c *Client) SaveHighScore(ctx context.Context, name string, score int) error {
	form := url.Values{}
	form.Set("name", name)
	form.Set("score", strconv.Itoa(score))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/save-highscore", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	// 读完响应体以便复用连接
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return fmt.Errorf("unexpected status %s: %s", resp.Status, msg)
}
