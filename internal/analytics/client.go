package analytics

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Client posts product events to the Mixpanel track endpoint. Tracking is
// strictly best effort: failures are logged and never surface to callers,
// and a client with no token is a no-op.
type Client struct {
	Token      string
	APIURL     string
	HTTPClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		Token:  token,
		APIURL: "https://api.mixpanel.com",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type trackPayload struct {
	Event      string                 `json:"event"`
	Properties map[string]interface{} `json:"properties"`
}

// Event records a single named event with its properties.
func (c *Client) Event(name string, properties map[string]interface{}) {
	if c == nil || c.Token == "" {
		return
	}

	props := map[string]interface{}{"token": c.Token}
	for k, v := range properties {
		props[k] = v
	}

	payload, err := json.Marshal(trackPayload{Event: name, Properties: props})
	if err != nil {
		log.Printf("Analytics error: %v", err)
		return
	}

	form := url.Values{}
	form.Set("data", base64.StdEncoding.EncodeToString(payload))

	resp, err := c.HTTPClient.Post(
		fmt.Sprintf("%s/track", c.APIURL),
		"application/x-www-form-urlencoded",
		bytes.NewBufferString(form.Encode()),
	)
	if err != nil {
		log.Printf("Analytics error: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("Analytics error: track returned status %d", resp.StatusCode)
	}
}
