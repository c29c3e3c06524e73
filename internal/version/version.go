package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	goversion "github.com/hashicorp/go-version"
	"github.com/nulzo/summary-gateway/internal/httpclient"
)

// Version is overridden at build time with -ldflags "-X ...version.Version=v1.2.3".
var Version = "v0.1.0"

// Release is the subset of a GitHub style "latest release" payload we read.
type Release struct {
	TagName string `json:"tag_name"`
}

// Check fetches the latest release from url and reports whether current is
// older than it.
func Check(ctx context.Context, client httpclient.HTTPClient, url, current string) (string, bool, error) {
	body, err := httpclient.SendRequest(ctx, client, http.MethodGet, url, map[string]string{"Accept": "application/json"}, nil)
	if err != nil {
		return "", false, err
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return "", false, fmt.Errorf("decoding release: %w", err)
	}

	running, err := goversion.NewVersion(current)
	if err != nil {
		return "", false, fmt.Errorf("parsing current version %q: %w", current, err)
	}

	latest, err := goversion.NewVersion(release.TagName)
	if err != nil {
		return "", false, fmt.Errorf("parsing latest version %q: %w", release.TagName, err)
	}

	return release.TagName, running.LessThan(latest), nil
}
