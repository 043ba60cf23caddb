// Package renderer writes a settings project tree to disk in the directory
// layout the CI server reads its project configuration from.
package renderer

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"settingskit/pkg/blueprint"
	"settingskit/pkg/dsl"
)

// Supported output formats.
const (
	FormatXML  = "xml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// File is one rendered document and the path it is written to.
type File struct {
	Path    string
	Content []byte
}

// Result lists the files a render wrote and the stale settings files it
// removed. In a dry run both are what would happen.
type Result struct {
	Written []string
	Removed []string
}

// Render writes the project tree under output.Destination. Every project gets
// its own directory named after its ID; sub-projects sit next to their parent
// and reference it by ID. Settings files left over from entities no longer in
// the tree are removed afterwards so the destination mirrors the tree.
func Render(project *dsl.Project, output blueprint.Output, isDryRun bool) (*Result, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	files, err := Documents(project, output)
	if err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(files))
	result := &Result{}
	for _, f := range files {
		keep[filepath.Clean(f.Path)] = true
		result.Written = append(result.Written, f.Path)
	}

	stale, err := staleFiles(output.Destination, keep)
	if err != nil {
		return nil, err
	}
	if isDryRun {
		result.Removed = stale
		return result, nil
	}

	for i, f := range files {
		if err := writeFile(f); err != nil {
			result.Written = result.Written[:i]
			return result, err
		}
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return result, fmt.Errorf("failed to remove stale %s: %w", path, err)
		}
		result.Removed = append(result.Removed, path)
	}
	removeEmptyDirs(output.Destination, result.Removed)
	return result, nil
}

// Documents encodes the project tree without touching the filesystem.
func Documents(project *dsl.Project, output blueprint.Output) ([]File, error) {
	format := output.Format
	if format == "" {
		format = FormatXML
	}
	encode, err := encoder(format)
	if err != nil {
		return nil, err
	}

	r := &collector{dest: output.Destination, ext: "." + format, encode: encode}
	if err := r.project(project, rootProjectID); err != nil {
		return nil, err
	}
	return r.files, nil
}

type collector struct {
	dest   string
	ext    string
	encode func(any) ([]byte, error)
	files  []File
}

func (r *collector) project(p *dsl.Project, parentID string) error {
	if p.ID == "" {
		return fmt.Errorf("project without an ID cannot be rendered")
	}
	dir := p.ID
	if err := r.add(newProjectDoc(p, parentID), dir, "project-config"+r.ext); err != nil {
		return err
	}
	for _, root := range p.VcsRoots.Items() {
		if err := r.add(newVcsRootDoc(root), dir, "vcsRoots", root.Identifier()+r.ext); err != nil {
			return err
		}
	}
	for _, bt := range p.BuildTypes {
		if err := r.add(newBuildTypeDoc(bt), dir, "buildTypes", bt.ID+r.ext); err != nil {
			return err
		}
	}
	for _, sub := range p.SubProjects {
		if err := r.project(sub, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *collector) add(doc any, elem ...string) error {
	rel := filepath.Join(elem...)
	if err := validatePath(rel); err != nil {
		return err
	}
	content, err := r.encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", rel, err)
	}
	r.files = append(r.files, File{Path: filepath.Join(r.dest, rel), Content: content})
	return nil
}

func encoder(format string) (func(any) ([]byte, error), error) {
	switch format {
	case FormatXML:
		return encodeXML, nil
	case FormatYAML:
		return yaml.Marshal, nil
	case FormatJSON:
		return encodeJSON, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q, expected one of: xml, yaml, json", format)
	}
}

func encodeXML(doc any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeJSON(doc any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// staleFiles returns the settings files under dest that keep does not list.
// Only project directories, recognised by their project-config file, are
// looked into, and only the files of the settings layout are considered, so
// .git and anything else stored next to the tree stay untouched.
func staleFiles(dest string, keep map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dest)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dest, err)
	}

	var stale []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(dest, entry.Name())
		configs, _ := filepath.Glob(filepath.Join(dir, "project-config.*"))
		if len(configs) == 0 {
			continue
		}
		for _, pattern := range []string{"project-config.*", filepath.Join("buildTypes", "*"), filepath.Join("vcsRoots", "*")} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, err
			}
			for _, path := range matches {
				info, err := os.Stat(path)
				if err != nil || !info.Mode().IsRegular() || keep[filepath.Clean(path)] {
					continue
				}
				stale = append(stale, path)
			}
		}
	}
	return stale, nil
}

// removeEmptyDirs drops the directories below dest that held removed files
// and are empty now.
func removeEmptyDirs(dest string, removed []string) {
	root := filepath.Clean(dest)
	for _, path := range removed {
		for dir := filepath.Dir(path); dir != root && strings.HasPrefix(dir, root+string(filepath.Separator)); dir = filepath.Dir(dir) {
			children, err := os.ReadDir(dir)
			if err != nil || len(children) > 0 {
				break
			}
			if err := os.Remove(dir); err != nil {
				break
			}
		}
	}
}

// validatePath rejects relative paths that escape the destination or are
// built from empty IDs.
func validatePath(rel string) error {
	cleanPath := filepath.Clean(rel)
	if strings.Contains(cleanPath, "..") || filepath.IsAbs(cleanPath) {
		return fmt.Errorf("path contains directory traversal: %s", rel)
	}
	for _, part := range strings.Split(cleanPath, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") {
			return fmt.Errorf("path has an empty or hidden element: %s", rel)
		}
	}
	return nil
}

func writeFile(f File) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
	}
	if err := os.WriteFile(f.Path, f.Content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return nil
}
