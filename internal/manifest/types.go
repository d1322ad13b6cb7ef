package manifest

// ManifestVersion is the only manifest version scaffolded projects target.
const ManifestVersion = 3

// ExtensionManifest is the subset of manifest.json the tool reads.
type ExtensionManifest struct {
	ManifestVersion int               `json:"manifest_version"`
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description,omitempty"`
	Action          *Action           `json:"action,omitempty"`
	Icons           map[string]string `json:"icons,omitempty"`
	Permissions     []string          `json:"permissions,omitempty"`
	Background      *Background       `json:"background,omitempty"`
}

// Action configures the toolbar button.
type Action struct {
	DefaultPopup string `json:"default_popup,omitempty"`
	DefaultTitle string `json:"default_title,omitempty"`
}

// Background declares the extension service worker.
type Background struct {
	ServiceWorker string `json:"service_worker,omitempty"`
	Type          string `json:"type,omitempty"`
}

// Popup returns the configured popup page, or "" when there is none.
func (m *ExtensionManifest) Popup() string {
	if m.Action == nil {
		return ""
	}
	return m.Action.DefaultPopup
}
