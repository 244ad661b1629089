// Package remote classifies project paths and builds VS Code remote URIs.
package remote

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Type represents the remote classification of a project path.
type Type int

const (
	// None means the path is a local filesystem path.
	None Type = iota
	// SSH means the path targets an ssh-remote host.
	SSH
	// WSL means the path targets a WSL distribution.
	WSL
	// Container means the path targets an attached container.
	Container
)

// String returns a short badge label for the remote type.
func (t Type) String() string {
	switch t {
	case SSH:
		return "ssh"
	case WSL:
		return "wsl"
	case Container:
		return "container"
	default:
		return "local"
	}
}

const (
	uriScheme          = "vscode-remote://"
	sshPrefix          = uriScheme + "ssh-remote+"
	wslPrefix          = uriScheme + "wsl+"
	containerPrefix    = uriScheme + "attached-container+"
	containerNamespace = "attached-container+"
)

// wslUNCPattern matches Windows UNC paths into a WSL distribution,
// e.g. \\wsl$\Ubuntu\home\user\project.
var wslUNCPattern = regexp.MustCompile(`^\\\\wsl\$\\([^\\]+)(\\.*)?$`)

// TypeOf classifies a path string into exactly one remote type.
// It is total over all strings: unrecognized patterns, including the
// empty string, fall through to None. SSH is checked before WSL,
// WSL before Container.
func TypeOf(path string) Type {
	if strings.HasPrefix(path, sshPrefix) {
		return SSH
	}
	if strings.HasPrefix(path, wslPrefix) || wslUNCPattern.MatchString(path) {
		return WSL
	}
	if strings.HasPrefix(path, containerPrefix) {
		return Container
	}
	return None
}

// containerDescriptor is the JSON payload VS Code expects hex-encoded in an
// attached-container authority.
type containerDescriptor struct {
	ContainerName string `json:"containerName"`
}

// EncodeContainerAuthority builds the attached-container authority for a
// container name: the name is wrapped in a JSON descriptor and hex-encoded.
// This matches the host CLI's authority format; it is not a general-purpose
// encoding. The result is deterministic for a given name.
func EncodeContainerAuthority(name string) string {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	payload, _ := json.Marshal(containerDescriptor{ContainerName: name})
	return containerNamespace + hex.EncodeToString(payload)
}

// DecodeContainerAuthority recovers the container name from an
// attached-container authority. Returns an error when the authority is not
// hex, or the payload is not a descriptor.
func DecodeContainerAuthority(authority string) (string, error) {
	encoded := strings.TrimPrefix(authority, containerNamespace)
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("container authority is not hex-encoded: %w", err)
	}
	var desc containerDescriptor
	if err := json.Unmarshal(raw, &desc); err != nil {
		return "", fmt.Errorf("container authority payload is not a descriptor: %w", err)
	}
	return strings.TrimPrefix(desc.ContainerName, "/"), nil
}

// isEncodedContainerAuthority reports whether the authority already carries a
// hex-encoded descriptor rather than a plain container name.
func isEncodedContainerAuthority(authority string) bool {
	_, err := DecodeContainerAuthority(authority)
	return err == nil
}

// splitRemoteURI splits a vscode-remote:// URI into authority and path.
// The path keeps its leading slash; a URI without a path yields "/".
func splitRemoteURI(uri string) (authority, path string) {
	rest := strings.TrimPrefix(uri, uriScheme)
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx], rest[idx:]
	}
	return rest, "/"
}

// FolderURI converts a stored remote path into the folder URI to hand to the
// editor CLI. SSH URIs pass through unchanged. WSL UNC paths are rewritten to
// wsl+ URIs. Container URIs get their authority hex-encoded when the stored
// form carries a plain container name. Local paths are rejected; callers
// resolve those to filesystem paths instead.
func FolderURI(path string) (string, error) {
	switch TypeOf(path) {
	case SSH:
		return path, nil

	case WSL:
		if strings.HasPrefix(path, wslPrefix) {
			return path, nil
		}
		m := wslUNCPattern.FindStringSubmatch(path)
		if m == nil {
			return "", fmt.Errorf("unrecognized WSL path: %q", path)
		}
		distro := m[1]
		unixPath := strings.ReplaceAll(m[2], `\`, "/")
		if unixPath == "" {
			unixPath = "/"
		}
		return wslPrefix + distro + unixPath, nil

	case Container:
		authority, folder := splitRemoteURI(path)
		if isEncodedContainerAuthority(authority) {
			return uriScheme + authority + folder, nil
		}
		name := strings.TrimPrefix(authority, containerNamespace)
		if name == "" {
			return "", fmt.Errorf("container path has no container name: %q", path)
		}
		return uriScheme + EncodeContainerAuthority(name) + folder, nil

	default:
		return "", fmt.Errorf("not a remote path: %q", path)
	}
}

// DisplayPath returns a human-readable form of a stored path for list rows:
// remote URIs are reduced to host/distro/container plus folder.
func DisplayPath(path string) string {
	switch TypeOf(path) {
	case SSH:
		authority, folder := splitRemoteURI(path)
		return strings.TrimPrefix(authority, "ssh-remote+") + ":" + folder

	case WSL:
		if m := wslUNCPattern.FindStringSubmatch(path); m != nil {
			return m[1] + ":" + strings.ReplaceAll(m[2], `\`, "/")
		}
		authority, folder := splitRemoteURI(path)
		return strings.TrimPrefix(authority, "wsl+") + ":" + folder

	case Container:
		authority, folder := splitRemoteURI(path)
		name := strings.TrimPrefix(authority, containerNamespace)
		if decoded, err := DecodeContainerAuthority(authority); err == nil {
			name = decoded
		}
		return name + ":" + folder

	default:
		return path
	}
}
