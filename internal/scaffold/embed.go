package scaffold

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"text/template"
)

//go:embed scaffolds/*.tmpl
var scaffoldFS embed.FS

// iconPNG is a 32x32 placeholder toolbar icon.
const iconPNG = "iVBORw0KGgoAAAANSUhEUgAAACAAAAAgCAIAAAD8GO2jAAAAM0lEQVR42mOQ07SmKWIYtYAkC6ybvlEFjVowasGoBaMWjFowasGoBaMWDHULRpuOA2IBAMUQtn2hlYQNAAAAAElFTkSuQmCC"

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}

// render executes the embedded template scaffolds/<name>.tmpl with data.
func render(name string, data *ScaffoldData) ([]byte, error) {
	tmplPath := "scaffolds/" + name + ".tmpl"
	tmplBytes, err := scaffoldFS.ReadFile(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// icon returns the decoded placeholder icon.
func icon() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(iconPNG)
	if err != nil {
		return nil, fmt.Errorf("decoding icon: %w", err)
	}
	return data, nil
}
