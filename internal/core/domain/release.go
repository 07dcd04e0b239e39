package domain

import "strings"

// DefaultAssetExtensions lists archive extensions in order of preference.
var DefaultAssetExtensions = []string{".zip", ".exe"}

// ReleaseAsset is one downloadable artifact of a release.
type ReleaseAsset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// ReleaseInfo is the latest published release of a repository.
type ReleaseInfo struct {
	TagName string         `json:"tag_name"`
	Assets  []ReleaseAsset `json:"assets"`
}

// Download is what the downloads view shows for one product.
type Download struct {
	Product    string  `json:"product"`
	Repository string  `json:"repository"`
	Version    string  `json:"version"`
	AssetName  *string `json:"asset_name"`
	URL        *string `json:"url"`
}

// Available reports whether the release carried a matching artifact.
func (d Download) Available() bool { return d.URL != nil }

// SelectAsset walks extensions in preference order and returns the first
// asset whose name ends with the current one. ok is false when nothing
// matches, which is a valid outcome.
func SelectAsset(assets []ReleaseAsset, extensions []string) (ReleaseAsset, bool) {
	for _, ext := range extensions {
		for _, a := range assets {
			if strings.HasSuffix(a.Name, ext) {
				return a, true
			}
		}
	}
	return ReleaseAsset{}, false
}

// NewDownload builds the view entry for a fetched release.
func NewDownload(product, repo string, info ReleaseInfo, extensions []string) Download {
	d := Download{Product: product, Repository: repo, Version: info.TagName}
	if a, ok := SelectAsset(info.Assets, extensions); ok {
		name, url := a.Name, a.DownloadURL
		d.AssetName = &name
		d.URL = &url
	}
	return d
}
