package remote

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Type
	}{
		{
			name: "local absolute path",
			path: "/home/user/project",
			want: None,
		},
		{
			name: "local relative path",
			path: "project/src",
			want: None,
		},
		{
			name: "local home path",
			path: "~/projects/tool",
			want: None,
		},
		{
			name: "empty string",
			path: "",
			want: None,
		},
		{
			name: "windows drive letter",
			path: `C:\Users\test\project`,
			want: None,
		},
		{
			name: "ssh remote",
			path: "vscode-remote://ssh-remote+devbox/home/user/project",
			want: SSH,
		},
		{
			name: "ssh remote with user",
			path: "vscode-remote://ssh-remote+admin@devbox/srv/app",
			want: SSH,
		},
		{
			name: "wsl uri",
			path: "vscode-remote://wsl+Ubuntu/home/user/project",
			want: WSL,
		},
		{
			name: "wsl unc path",
			path: `\\wsl$\Ubuntu\home\user\project`,
			want: WSL,
		},
		{
			name: "wsl unc path bare distro",
			path: `\\wsl$\Debian`,
			want: WSL,
		},
		{
			name: "attached container",
			path: "vscode-remote://attached-container+dev-db/workspace",
			want: Container,
		},
		{
			name: "plain url is local",
			path: "https://example.com/repo",
			want: None,
		},
		{
			name: "unrelated vscode-remote authority is local",
			path: "vscode-remote://codespaces+abc/workspace",
			want: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.path); got != tt.want {
				t.Errorf("TypeOf(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{None, "local"},
		{SSH, "ssh"},
		{WSL, "wsl"},
		{Container, "container"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestEncodeContainerAuthority(t *testing.T) {
	authority := EncodeContainerAuthority("dev-db")

	if !strings.HasPrefix(authority, "attached-container+") {
		t.Fatalf("authority = %q, want attached-container+ prefix", authority)
	}

	encoded := strings.TrimPrefix(authority, "attached-container+")
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("authority payload is not hex: %v", err)
	}
	if string(raw) != `{"containerName":"/dev-db"}` {
		t.Errorf("payload = %s, want container descriptor", raw)
	}

	// Deterministic for the same name
	if again := EncodeContainerAuthority("dev-db"); again != authority {
		t.Errorf("encoding not deterministic: %q != %q", again, authority)
	}

	// Leading slash is not doubled
	if withSlash := EncodeContainerAuthority("/dev-db"); withSlash != authority {
		t.Errorf("leading slash changed encoding: %q != %q", withSlash, authority)
	}
}

func TestDecodeContainerAuthority_RoundTrip(t *testing.T) {
	for _, name := range []string{"dev-db", "app_1", "web"} {
		authority := EncodeContainerAuthority(name)
		got, err := DecodeContainerAuthority(authority)
		if err != nil {
			t.Fatalf("DecodeContainerAuthority(%q) error = %v", authority, err)
		}
		if got != name {
			t.Errorf("round trip = %q, want %q", got, name)
		}
	}
}

func TestDecodeContainerAuthority_Invalid(t *testing.T) {
	tests := []string{
		"attached-container+not-hex!",
		"attached-container+abcd", // hex but not JSON
	}
	for _, authority := range tests {
		if _, err := DecodeContainerAuthority(authority); err == nil {
			t.Errorf("DecodeContainerAuthority(%q) = nil error, want error", authority)
		}
	}
}

func TestFolderURI(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{
			name: "ssh passes through",
			path: "vscode-remote://ssh-remote+devbox/home/user/project",
			want: "vscode-remote://ssh-remote+devbox/home/user/project",
		},
		{
			name: "wsl uri passes through",
			path: "vscode-remote://wsl+Ubuntu/home/user/project",
			want: "vscode-remote://wsl+Ubuntu/home/user/project",
		},
		{
			name: "wsl unc is rewritten",
			path: `\\wsl$\Ubuntu\home\user\project`,
			want: "vscode-remote://wsl+Ubuntu/home/user/project",
		},
		{
			name: "wsl unc bare distro",
			path: `\\wsl$\Debian`,
			want: "vscode-remote://wsl+Debian/",
		},
		{
			name: "container name gets encoded",
			path: "vscode-remote://attached-container+dev-db/workspace",
			want: "vscode-remote://" + EncodeContainerAuthority("dev-db") + "/workspace",
		},
		{
			name: "already encoded container passes through",
			path: "vscode-remote://" + EncodeContainerAuthority("dev-db") + "/workspace",
			want: "vscode-remote://" + EncodeContainerAuthority("dev-db") + "/workspace",
		},
		{
			name:    "container without name fails",
			path:    "vscode-remote://attached-container+",
			wantErr: true,
		},
		{
			name:    "local path is rejected",
			path:    "/home/user/project",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FolderURI(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FolderURI(%q) = %q, want error", tt.path, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FolderURI(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("FolderURI(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDisplayPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "local unchanged",
			path: "/home/user/project",
			want: "/home/user/project",
		},
		{
			name: "ssh shows host and folder",
			path: "vscode-remote://ssh-remote+devbox/srv/app",
			want: "devbox:/srv/app",
		},
		{
			name: "wsl unc shows distro",
			path: `\\wsl$\Ubuntu\home\user`,
			want: "Ubuntu:/home/user",
		},
		{
			name: "container shows decoded name",
			path: "vscode-remote://" + EncodeContainerAuthority("dev-db") + "/workspace",
			want: "dev-db:/workspace",
		},
		{
			name: "container plain name",
			path: "vscode-remote://attached-container+dev-db/workspace",
			want: "dev-db:/workspace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayPath(tt.path); got != tt.want {
				t.Errorf("DisplayPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
