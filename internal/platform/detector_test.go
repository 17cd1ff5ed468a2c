package platform

import (
	"runtime"
	"testing"
)

func withExisting(t *testing.T, existing ...string) {
	t.Helper()
	orig := pathExists
	set := make(map[string]bool, len(existing))
	for _, p := range existing {
		set[p] = true
	}
	pathExists = func(path string) bool { return set[path] }
	t.Cleanup(func() { pathExists = orig })
}

func TestStagingDirFor(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		existing []string
		want     string
		wantErr  bool
	}{
		{"debian", "linux", []string{"/etc/nginx"}, "/etc/nginx/fragments.d", false},
		{"source build", "linux", []string{"/usr/local/nginx/conf"}, "/usr/local/nginx/conf/fragments.d", false},
		{"linux prefers /etc", "linux", []string{"/etc/nginx", "/usr/local/nginx/conf"}, "/etc/nginx/fragments.d", false},
		{"apple silicon", "darwin", []string{"/opt/homebrew/etc/nginx", "/usr/local/etc/nginx"}, "/opt/homebrew/etc/nginx/fragments.d", false},
		{"intel mac", "darwin", []string{"/usr/local/etc/nginx"}, "/usr/local/etc/nginx/fragments.d", false},
		{"freebsd", "freebsd", []string{"/usr/local/etc/nginx"}, "/usr/local/etc/nginx/fragments.d", false},
		{"nginx missing", "linux", nil, "", true},
		{"unsupported", "plan9", []string{"/etc/nginx"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withExisting(t, tt.existing...)

			got, err := stagingDirFor(tt.goos)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDefaultStagingDir(t *testing.T) {
	withExisting(t, "/etc/nginx", "/opt/homebrew/etc/nginx", "/usr/local/etc/nginx")

	dir, err := DefaultStagingDir()
	switch runtime.GOOS {
	case "linux", "darwin", "freebsd":
		if err != nil {
			t.Fatalf("DefaultStagingDir failed: %v", err)
		}
		if dir == "" {
			t.Error("expected a staging directory")
		}
	default:
		if err == nil {
			t.Errorf("expected error on unsupported platform %s", runtime.GOOS)
		}
	}
}

func TestPlatform(t *testing.T) {
	expected := runtime.GOOS + "/" + runtime.GOARCH
	if p := Platform(); p != expected {
		t.Errorf("expected %s, got %s", expected, p)
	}
}
