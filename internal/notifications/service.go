package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cinesync/internal/config"
)

const userAgent = "CineSync/0.1.0"

// Service defines the notification surface exposed to the sync pipeline.
type Service interface {
	NotifySyncStarted(ctx context.Context, pages int) error
	NotifySyncCompleted(ctx context.Context, created, skipped, failed int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		topic:  topic,
		client: &http.Client{Timeout: timeout},
	}
}

// NewNop returns a Service that drops every notification.
func NewNop() Service {
	return noopService{}
}

type ntfyService struct {
	topic  string
	client *http.Client
}

func (s *ntfyService) publish(ctx context.Context, title, message, tags string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.topic, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if title != "" {
		req.Header.Set("Title", title)
	}
	if tags != "" {
		req.Header.Set("Tags", tags)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("ntfy returned %d", resp.StatusCode)
	}
	return nil
}

func (s *ntfyService) NotifySyncStarted(ctx context.Context, pages int) error {
	return s.publish(ctx, "Sync started", fmt.Sprintf("Syncing %d catalog pages", pages), "arrows_counterclockwise")
}

func (s *ntfyService) NotifySyncCompleted(ctx context.Context, created, skipped, failed int, duration time.Duration) error {
	message := fmt.Sprintf("Created %d, skipped %d, failed %d in %s",
		created, skipped, failed, duration.Round(time.Second))
	tags := "white_check_mark"
	if failed > 0 {
		tags = "warning"
	}
	return s.publish(ctx, "Sync completed", message, tags)
}

func (s *ntfyService) NotifyError(ctx context.Context, err error, context string) error {
	return s.publish(ctx, "Sync error", fmt.Sprintf("%s: %v", context, err), "rotating_light")
}

func (s *ntfyService) TestNotification(ctx context.Context) error {
	return s.publish(ctx, "CineSync test", "Notifications are working", "tada")
}

type noopService struct{}

func (noopService) NotifySyncStarted(context.Context, int) error { return nil }
func (noopService) NotifySyncCompleted(context.Context, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error          { return nil }
