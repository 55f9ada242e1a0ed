package imagehost

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Client talks to the remote asset host that stores product images and
// serves them from its CDN. No request timeout is set; a slow host stalls
// the owning request until the host's own limits kick in.
type Client struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	Folder     string
	HTTPClient *http.Client
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Message   string `json:"message"`
}

func NewClient(baseURL, apiKey, apiSecret string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		Folder:     "restaurant/products",
		HTTPClient: &http.Client{},
	}
}

// Upload sends the image and returns the hosted URL.
func (c *Client) Upload(filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.WriteField("folder", c.Folder); err != nil {
		return "", fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload form: %w", err)
	}

	url := fmt.Sprintf("%s/upload", c.BaseURL)
	req, err := http.NewRequest("POST", url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	auth := base64.StdEncoding.EncodeToString([]byte(c.APIKey + ":" + c.APISecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var response uploadResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || response.SecureURL == "" {
		return "", fmt.Errorf("upload rejected (status %d): %s", resp.StatusCode, response.Message)
	}

	return response.SecureURL, nil
}
