package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// Asset is the stored reference to a hosted image or video. The public id is
// what the hosting service needs to delete the asset later.
type Asset struct {
	URL          string `bson:"url" json:"url"`
	PublicID     string `bson:"public_id" json:"public_id"`
	ResourceType string `bson:"resource_type,omitempty" json:"resource_type,omitempty"`
}

type Uploader interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (Asset, error)
}

type Destroyer interface {
	Destroy(ctx context.Context, resourceType, publicID string) error
}

type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cloudName, apiKey, apiSecret string) *Client {
	if strings.TrimSpace(cloudName) == "" || strings.TrimSpace(apiKey) == "" || strings.TrimSpace(apiSecret) == "" {
		return nil
	}
	return &Client{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL    string `json:"secure_url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Error        struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Upload(ctx context.Context, folder, filename string, r io.Reader) (Asset, error) {
	if c == nil {
		return Asset{}, errors.New("media client not configured")
	}
	if strings.TrimSpace(folder) == "" {
		return Asset{}, errors.New("missing folder")
	}

	params := map[string]string{
		"folder":    folder,
		"public_id": uuid.NewString(),
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	pipeRead, pipeWrite := io.Pipe()
	mw := multipart.NewWriter(pipeWrite)

	go func() {
		var werr error
		defer func() {
			_ = pipeWrite.CloseWithError(werr)
		}()
		for key, value := range params {
			if werr = mw.WriteField(key, value); werr != nil {
				return
			}
		}
		if werr = mw.WriteField("api_key", c.apiKey); werr != nil {
			return
		}
		if werr = mw.WriteField("signature", c.sign(params)); werr != nil {
			return
		}
		var part io.Writer
		if part, werr = mw.CreateFormFile("file", filename); werr != nil {
			return
		}
		if _, werr = io.Copy(part, r); werr != nil {
			return
		}
		werr = mw.Close()
	}()

	endpoint := fmt.Sprintf("%s/%s/auto/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pipeRead)
	if err != nil {
		return Asset{}, fmt.Errorf("media upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("media upload failed: %w", err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Asset{}, fmt.Errorf("media upload decode: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(out.Error.Message)
		if msg == "" {
			msg = "unexpected status"
		}
		return Asset{}, fmt.Errorf("media upload failed: status=%d %s", resp.StatusCode, msg)
	}
	if out.SecureURL == "" || out.PublicID == "" {
		return Asset{}, errors.New("media upload response missing url or public_id")
	}

	return Asset{
		URL:          out.SecureURL,
		PublicID:     out.PublicID,
		ResourceType: out.ResourceType,
	}, nil
}

type destroyResponse struct {
	Result string `json:"result"`
}

func (c *Client) Destroy(ctx context.Context, resourceType, publicID string) error {
	if c == nil {
		return errors.New("media client not configured")
	}
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return errors.New("missing public_id")
	}
	if resourceType == "" {
		resourceType = "image"
	}

	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	form := make([]string, 0, len(params)+2)
	for key, value := range params {
		form = append(form, key+"="+value)
	}
	form = append(form, "api_key="+c.apiKey, "signature="+c.sign(params))

	endpoint := fmt.Sprintf("%s/%s/%s/destroy", c.baseURL, c.cloudName, resourceType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(strings.Join(form, "&")))
	if err != nil {
		return fmt.Errorf("media destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("media destroy failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("media destroy failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("media destroy decode: %w", err)
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("media destroy failed: result=%s", out.Result)
	}
	return nil
}

// sign produces the hosting API's request signature: the sorted key=value
// params joined with &, then the secret, hashed with SHA-1.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
