//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ksyq12/vhostfrag/internal/config"
	"github.com/ksyq12/vhostfrag/internal/location"
	"github.com/ksyq12/vhostfrag/internal/template"
	"github.com/ksyq12/vhostfrag/internal/writer"
)

const manifestYAML = `
defaults:
  proxy_read_timeout: 30s
locations:
  - vhost: test.local
    name: root
    location: /
    www_root: %[1]s
    try_files: [$uri, $uri/, =404]
    ssl: true
  - vhost: test.local
    name: api
    location: /api/
    proxy: 127.0.0.1:9000
    websocket_upgrade: true
  - vhost: test.local
    name: static
    location: /static/
    alias_root: %[1]s/
  - vhost: test.local
    name: status
    location: = /status
    www_root: %[1]s
    stub_status: true
  - vhost: other.local
    name: root
    location: /
    www_root: %[1]s
`

// stageManifest compiles the manifest into a fresh staging directory
func stageManifest(t *testing.T) (*config.Manifest, *writer.Staging, string) {
	t.Helper()
	baseDir := t.TempDir()
	wwwDir := filepath.Join(baseDir, "www")
	if err := os.MkdirAll(wwwDir, 0755); err != nil {
		t.Fatalf("Failed to create www directory: %v", err)
	}

	m, err := config.ParseManifest(strings.NewReader(fmt.Sprintf(manifestYAML, wwwDir)))
	if err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}

	renderer, err := template.NewRenderer()
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}
	compiler := location.NewCompiler(renderer, m.Defaults.Location())

	specs := m.Specs()
	compiled, err := compiler.CompileAll(context.Background(), specs, location.DefaultConcurrency)
	if err != nil {
		t.Fatalf("CompileAll failed: %v", err)
	}

	w := writer.NewStaging(filepath.Join(baseDir, "fragments.d"))
	for i, fragments := range compiled {
		for _, f := range fragments {
			if _, err := w.Stage(f, specs[i].Enabled); err != nil {
				t.Fatalf("Stage %s failed: %v", f.ID, err)
			}
		}
	}
	return m, w, baseDir
}

// assemble concatenates the staged fragments of vhost in listing order
func assemble(t *testing.T, w *writer.Staging, vhost string) string {
	t.Helper()
	ids, err := w.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	var b strings.Builder
	for _, id := range ids {
		if !strings.HasPrefix(id, vhost+"-500-") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(w.Dir(), id))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", id, err)
		}
		b.Write(content)
	}
	return b.String()
}

func TestFragmentPipeline(t *testing.T) {
	_, w, _ := stageManifest(t)

	t.Run("Assembly order", func(t *testing.T) {
		ids, err := w.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		want := []string{
			"other.local-500-root",
			"test.local-500-api",
			"test.local-500-root",
			"test.local-500-root-secure",
			"test.local-500-static",
			"test.local-500-status",
		}
		if diff := cmp.Diff(want, ids); diff != "" {
			t.Errorf("staged ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Secure variant matches", func(t *testing.T) {
		plain, _ := os.ReadFile(filepath.Join(w.Dir(), "test.local-500-root"))
		secure, _ := os.ReadFile(filepath.Join(w.Dir(), "test.local-500-root-secure"))
		if len(plain) == 0 || string(plain) != string(secure) {
			t.Errorf("secure fragment should equal plain fragment:\n%s\n---\n%s", plain, secure)
		}
	})

	t.Run("Strategies rendered", func(t *testing.T) {
		conf := assemble(t, w, "test.local")
		for _, want := range []string{
			"proxy_pass http://127.0.0.1:9000;",
			"proxy_read_timeout 30s;",
			"proxy_set_header Upgrade $http_upgrade;",
			"try_files $uri $uri/ =404;",
			"stub_status on;",
		} {
			if !strings.Contains(conf, want) {
				t.Errorf("assembled config should contain %q:\n%s", want, conf)
			}
		}
		if strings.Count(conf, "location / {") != 2 {
			t.Errorf("expected plain and secure root locations:\n%s", conf)
		}
	})

	t.Run("Absent removes both variants", func(t *testing.T) {
		m, err := config.ParseManifest(strings.NewReader(fmt.Sprintf(manifestYAML, "/unused")))
		if err != nil {
			t.Fatalf("Failed to parse manifest: %v", err)
		}
		m.Locations[0].Ensure = config.EnsureAbsent
		renderer, _ := template.NewRenderer()
		compiler := location.NewCompiler(renderer, m.Defaults.Location())

		fragments, err := compiler.Compile(m.Locations[0].Spec())
		if err != nil {
			t.Fatalf("Compile failed: %v", err)
		}
		for _, f := range fragments {
			change, err := w.Stage(f, false)
			if err != nil {
				t.Fatalf("Stage failed: %v", err)
			}
			if change != writer.ChangeRemoved {
				t.Errorf("expected %s removed, got %s", f.ID, change)
			}
		}

		ids, _ := w.List()
		for _, id := range ids {
			if strings.HasPrefix(id, "test.local-500-root") {
				t.Errorf("%s should have been removed", id)
			}
		}
	})
}

func TestNginxAcceptsAssembledConfig(t *testing.T) {
	if !isNginxAvailable() {
		t.Skip("Nginx is not available")
	}

	_, w, baseDir := stageManifest(t)

	server := "server {\n  listen 127.0.0.1:18080;\n  server_name test.local;\n" +
		assemble(t, w, "test.local") + "}\n"
	conf := fmt.Sprintf(`pid %[1]s/nginx.pid;
error_log %[1]s/error.log;
events {}
http {
  access_log off;
  client_body_temp_path %[1]s/tmp;
  %[2]s
}
`, baseDir, server)

	// Plain and secure root fragments share a location; rename one so both
	// fit in a single server block.
	conf = strings.Replace(conf, "location / {", "location /plain/ {", 1)

	confPath := filepath.Join(baseDir, "nginx.conf")
	if err := os.WriteFile(confPath, []byte(conf), 0644); err != nil {
		t.Fatalf("Failed to write nginx.conf: %v", err)
	}

	cmd := exec.Command("nginx", "-t", "-p", baseDir, "-e", filepath.Join(baseDir, "error.log"), "-c", confPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Errorf("nginx -t rejected assembled config: %v\n%s\n%s", err, out, conf)
	}
}

func isNginxAvailable() bool {
	_, err := exec.LookPath("nginx")
	return err == nil
}
