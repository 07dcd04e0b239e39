package domain

import "testing"

func TestSelectAsset_PrefersArchive(t *testing.T) {
	assets := []ReleaseAsset{
		{Name: "MineBench-Setup.exe", DownloadURL: "https://example.com/setup.exe"},
		{Name: "checksums.txt"},
		{Name: "MineBench-win64.zip", DownloadURL: "https://example.com/win64.zip"},
	}

	got, ok := SelectAsset(assets, DefaultAssetExtensions)
	if !ok {
		t.Fatalf("expected an asset to be selected")
	}
	if got.Name != "MineBench-win64.zip" {
		t.Fatalf("expected zip asset, got %s", got.Name)
	}
}

func TestSelectAsset_FallsBackToInstaller(t *testing.T) {
	assets := []ReleaseAsset{{Name: "notes.md"}, {Name: "MineBench-Setup.exe"}}

	got, ok := SelectAsset(assets, DefaultAssetExtensions)
	if !ok || got.Name != "MineBench-Setup.exe" {
		t.Fatalf("expected exe fallback, got %+v ok=%v", got, ok)
	}
}

func TestNewDownload_NoMatchingAsset(t *testing.T) {
	d := NewDownload("cpu", "owner/repo", ReleaseInfo{TagName: "v0.1.2", Assets: []ReleaseAsset{{Name: "src.tar.gz"}}}, DefaultAssetExtensions)

	if d.Available() {
		t.Fatalf("expected no download to be available")
	}
	if d.Version != "v0.1.2" {
		t.Fatalf("expected version v0.1.2, got %s", d.Version)
	}
}
