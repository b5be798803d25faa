package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/network"
	"github.com/creatv/creatv/util"
	"github.com/creatv/creatv/where"
	"github.com/metafates/gache"
)

var cacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

var releasesURL = constant.ReleasesAPIURL

// Latest returns the newest released version, cached for two days.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest == "" {
		return "", errors.New("empty tag name")
	}

	_ = cacher.Set(latest)
	return latest, nil
}
