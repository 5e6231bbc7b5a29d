// Command smoke drives a running server through the chat, image and speech
// flows and optionally tails the domain events it emits on NATS.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"ai-mediagen-be/internal/config"
	"ai-mediagen-be/pkg/events"
	pktNats "ai-mediagen-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *client) send(method, path string, body interface{}) (int, map[string]interface{}, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, decoded, nil
}

func mintToken(secret, userId, email string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
		"email":   email,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
}

func step(title string, fn func() (int, map[string]interface{}, error)) map[string]interface{} {
	color.Yellow("\n%s", title)
	code, body, err := fn()
	if err != nil {
		color.Red("Failed: %v", err)
		return nil
	}
	if code >= 400 {
		color.Red("Status: %d %v", code, body["message"])
		return nil
	}
	color.Green("Status: %d", code)
	pretty, _ := json.MarshalIndent(body["data"], "", "  ")
	fmt.Println(string(pretty))
	data, _ := body["data"].(map[string]interface{})
	return data
}

func watch(ctx context.Context, natsURL string) {
	sub, err := pktNats.NewSubscriber(natsURL)
	if err != nil {
		color.Red("NATS unavailable: %v", err)
		return
	}
	defer sub.Close()

	consumer, err := sub.Subscribe(ctx, pktNats.SubjectPrefix+">", "", func(ctx context.Context, event events.Event) error {
		color.Magenta("[event] %s %v", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		color.Red("Subscribe failed: %v", err)
		return
	}
	defer consumer.Stop()

	color.Cyan("Watching %s> on %s (Ctrl+C to stop)", pktNats.SubjectPrefix, natsURL)
	<-ctx.Done()
}

func main() {
	cfg := config.Load()

	baseURL := flag.String("base", "http://localhost:"+cfg.App.Port+"/api", "API base URL")
	userId := flag.String("user", uuid.NewString(), "user id placed in the token")
	email := flag.String("email", "", "e-mail claim; enables notification mails")
	size := flag.String("size", "512x512", "image size")
	tone := flag.String("tone", "friendly", "speech tone")
	watchOnly := flag.Bool("watch", false, "only tail domain events from NATS")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *watchOnly {
		watch(ctx, cfg.App.NatsURL)
		return
	}

	token, err := mintToken(cfg.Auth.JwtSecret, *userId, *email)
	if err != nil {
		color.Red("Failed to sign token: %v", err)
		os.Exit(1)
	}
	c := &client{baseURL: *baseURL, token: token, http: &http.Client{Timeout: 3 * time.Minute}}

	color.Cyan("Smoke run as user %s against %s", *userId, *baseURL)

	chat := step("[CHAT] 1. Open a session", func() (int, map[string]interface{}, error) {
		return c.send(http.MethodPost, "/chat/v1/send", map[string]interface{}{"prompt": "Give me three fun facts about octopuses."})
	})
	if sessionId, ok := chat["chat_session_id"].(string); ok {
		step("[CHAT] 2. Continue the session", func() (int, map[string]interface{}, error) {
			return c.send(http.MethodPost, "/chat/v1/send", map[string]interface{}{"chat_session_id": sessionId, "prompt": "Which one is the most surprising?"})
		})
		step("[CHAT] 3. History", func() (int, map[string]interface{}, error) {
			return c.send(http.MethodGet, "/chat/v1/sessions/"+sessionId+"/history", nil)
		})
	}

	image := step("[IMAGE] 4. Generate", func() (int, map[string]interface{}, error) {
		return c.send(http.MethodPost, "/image/v1/generate", map[string]interface{}{
			"title":      "An octopus reading a newspaper",
			"image_size": *size,
			"art_style":  "watercolor",
		})
	})
	if imageId, ok := image["id"].(string); ok {
		step("[IMAGE] 5. Save", func() (int, map[string]interface{}, error) {
			return c.send(http.MethodPatch, "/image/v1/"+imageId+"/save", nil)
		})
		step("[IMAGE] 6. Save again (expect 409)", func() (int, map[string]interface{}, error) {
			return c.send(http.MethodPatch, "/image/v1/"+imageId+"/save", nil)
		})
	}

	speech := step("[SPEECH] 7. Generate", func() (int, map[string]interface{}, error) {
		return c.send(http.MethodPost, "/speech/v1/generate", map[string]interface{}{"text": "Octopuses have three hearts.", "tone": *tone})
	})
	if speechId, ok := speech["id"].(string); ok {
		step("[SPEECH] 8. Save", func() (int, map[string]interface{}, error) {
			return c.send(http.MethodPatch, "/speech/v1/"+speechId+"/save", nil)
		})
	}

	step("[LIBRARY] 9. Saved images", func() (int, map[string]interface{}, error) {
		return c.send(http.MethodGet, "/image/v1?saved=true", nil)
	})

	color.Cyan("\nSmoke run finished")
}
