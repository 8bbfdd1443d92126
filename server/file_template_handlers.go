package server

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*
var templateFiles embed.FS

// TemplateFilesFS is the embedded templates directory
func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a dashboard page from the embedded filesystem.
// Templates are parsed once when the route is registered.
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(name).Option("missingkey=error").ParseFS(TemplateFilesFS(), name)
}
