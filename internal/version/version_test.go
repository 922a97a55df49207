package version

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	if info.Version == "" {
		t.Error("expected non-empty version")
	}
	if info.GoVersion == "" {
		t.Error("expected non-empty go version")
	}
	if info.Platform == "" {
		t.Error("expected non-empty platform")
	}
	if !strings.Contains(info.Platform, runtime.GOOS) {
		t.Errorf("expected platform to contain %s, got %s", runtime.GOOS, info.Platform)
	}
	if !strings.Contains(info.Platform, runtime.GOARCH) {
		t.Errorf("expected platform to contain %s, got %s", runtime.GOARCH, info.Platform)
	}
}

func TestString(t *testing.T) {
	s := String()

	if !strings.Contains(s, ApplicationName) {
		t.Errorf("expected string to contain %s, got %s", ApplicationName, s)
	}
	if !strings.Contains(s, "version") {
		t.Errorf("expected string to contain 'version', got %s", s)
	}
}

func TestShort(t *testing.T) {
	s := Short()

	if !strings.HasPrefix(s, ApplicationName) {
		t.Errorf("expected short string to start with %s, got %s", ApplicationName, s)
	}
}

func TestInfoJSON(t *testing.T) {
	data, err := json.Marshal(GetInfo())
	if err != nil {
		t.Fatalf("marshaling info: %v", err)
	}
	if !strings.Contains(string(data), "go_version") {
		t.Errorf("expected JSON to contain go_version field, got %s", data)
	}
}

func TestJSON(t *testing.T) {
	var info Info
	if err := json.Unmarshal([]byte(JSON()), &info); err != nil {
		t.Fatalf("unmarshaling JSON output: %v", err)
	}
	if info.Version != Version {
		t.Errorf("expected version %s, got %s", Version, info.Version)
	}
}

func TestIsSnapshot(t *testing.T) {
	// The default dev build counts as a snapshot.
	if !IsSnapshot() {
		t.Error("expected dev build to be a snapshot")
	}
	if IsRelease() {
		t.Error("expected dev build not to be a release")
	}
}
