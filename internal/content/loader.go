// Package content loads the YAML content directory into memory and lints it.
//
// Layout:
//
//	categories.yaml     category registry (dsa: true marks DSA subcategories)
//	problems.yaml       ordered problem catalog
//	concepts/*.yaml     problem id -> concept analysis
//	dsa_concepts.yaml   DSA concepts with related problems and learning paths
//	patterns.yaml       DSA pattern pages
//	baseline.yaml       coverage baseline
package content

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/content-engine/internal/models"
)

const (
	categoriesFile  = "categories.yaml"
	problemsFile    = "problems.yaml"
	conceptsDir     = "concepts"
	dsaConceptsFile = "dsa_concepts.yaml"
	patternsFile    = "patterns.yaml"
	baselineFile    = "baseline.yaml"
)

// Content is everything read from a content directory
type Content struct {
	Dir         string
	Categories  []models.Category
	Problems    []*models.Problem
	Concepts    map[string]models.ConceptAnalysis
	DSAConcepts []models.DSAConcept
	Patterns    []models.DSAPattern
	Baseline    models.CoverageBaseline

	// Defects found while loading; empty for shippable content
	Defects []Defect
}

// Err returns a *DefectsError when the content has authoring defects
func (c *Content) Err() error {
	if len(c.Defects) == 0 {
		return nil
	}
	return &DefectsError{Defects: c.Defects}
}

// Loader reads a content directory
type Loader struct {
	dir     string
	content *Content

	// raw records kept for linting
	problemFiles []problemFile
	conceptFiles map[string]conceptSource
}

type conceptSource struct {
	file    string
	concept conceptFile
}

// NewLoader creates a loader for dir
func NewLoader(dir string) *Loader {
	return &Loader{
		dir: dir,
		content: &Content{
			Dir:      dir,
			Concepts: make(map[string]models.ConceptAnalysis),
		},
		conceptFiles: make(map[string]conceptSource),
	}
}

// Load reads and lints the content directory in one call
func Load(dir string) (*Content, error) {
	return NewLoader(dir).Load()
}

// Load reads every content file. Unreadable or malformed files are returned
// as errors; authoring defects are collected on Content.Defects.
func (l *Loader) Load() (*Content, error) {
	slog.Info("loading content from directory", "dir", l.dir)

	if err := l.loadCategories(); err != nil {
		return nil, err
	}
	if err := l.loadProblems(); err != nil {
		return nil, err
	}
	if err := l.loadConcepts(); err != nil {
		return nil, err
	}
	if err := l.loadDSAConcepts(); err != nil {
		return nil, err
	}
	if err := l.loadPatterns(); err != nil {
		return nil, err
	}
	if err := l.loadBaseline(); err != nil {
		return nil, err
	}

	l.lint()

	c := l.content
	slog.Info("content loaded",
		"problems", len(c.Problems),
		"categories", len(c.Categories),
		"concepts", len(c.Concepts),
		"dsa_concepts", len(c.DSAConcepts),
		"patterns", len(c.Patterns),
		"defects", len(c.Defects),
	)
	return c, nil
}

func (l *Loader) loadCategories() error {
	var files []categoryFile
	if err := readYAML(filepath.Join(l.dir, categoriesFile), &files); err != nil {
		return err
	}

	for _, f := range files {
		l.addDefects(structDefects(categoriesFile, f.ID, f))
		l.content.Categories = append(l.content.Categories, f.toModel())
	}
	return nil
}

func (l *Loader) loadProblems() error {
	var files []problemFile
	if err := readYAML(filepath.Join(l.dir, problemsFile), &files); err != nil {
		return err
	}

	for _, f := range files {
		l.addDefects(structDefects(problemsFile, f.ID, f))
		l.problemFiles = append(l.problemFiles, f)
		l.content.Problems = append(l.content.Problems, f.toModel())
	}
	return nil
}

// loadConcepts merges every concepts/*.yaml file; a problem id may appear in one file only
func (l *Loader) loadConcepts() error {
	dir := filepath.Join(l.dir, conceptsDir)

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return fmt.Errorf("failed to list concept files: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	if len(files) == 0 {
		slog.Warn("no concept files found", "dir", dir)
	}

	for _, path := range files {
		var entries map[string]conceptFile
		if err := readYAML(path, &entries); err != nil {
			return err
		}

		rel := filepath.Join(conceptsDir, filepath.Base(path))
		ids := make([]string, 0, len(entries))
		for id := range entries {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			cf := entries[id]
			if prev, dup := l.conceptFiles[id]; dup {
				l.addDefect(rel, id, fmt.Sprintf("concept analysis already defined in %s", prev.file))
				continue
			}
			l.addDefects(structDefects(rel, id, cf))
			l.conceptFiles[id] = conceptSource{file: rel, concept: cf}
			l.content.Concepts[id] = cf.toModel()
		}

		slog.Debug("concept file loaded", "file", rel, "count", len(entries))
	}
	return nil
}

func (l *Loader) loadDSAConcepts() error {
	var files []dsaConceptFile
	if err := readOptionalYAML(filepath.Join(l.dir, dsaConceptsFile), &files); err != nil {
		return err
	}

	for _, f := range files {
		l.addDefects(structDefects(dsaConceptsFile, f.ID, f))
		l.content.DSAConcepts = append(l.content.DSAConcepts, f.toModel())
	}
	return nil
}

func (l *Loader) loadPatterns() error {
	var files []patternFile
	if err := readOptionalYAML(filepath.Join(l.dir, patternsFile), &files); err != nil {
		return err
	}

	for _, f := range files {
		l.addDefects(structDefects(patternsFile, f.ID, f))
		l.content.Patterns = append(l.content.Patterns, f.toModel())
	}
	return nil
}

// baselineRecord represents baseline.yaml
type baselineRecord struct {
	DSAProblemCount         int `yaml:"dsaProblemCount" validate:"gte=0"`
	ProblemConceptCount     int `yaml:"problemConceptCount" validate:"gte=0"`
	MappedDSAProblemCount   int `yaml:"mappedDsaProblemCount" validate:"gte=0"`
	UnmappedDSAProblemCount int `yaml:"unmappedDsaProblemCount" validate:"gte=0"`
}

func (l *Loader) loadBaseline() error {
	var b baselineRecord
	if err := readYAML(filepath.Join(l.dir, baselineFile), &b); err != nil {
		return err
	}

	l.addDefects(structDefects(baselineFile, "", b))
	l.content.Baseline = models.CoverageBaseline{
		DSAProblemCount:         b.DSAProblemCount,
		ProblemConceptCount:     b.ProblemConceptCount,
		MappedDSAProblemCount:   b.MappedDSAProblemCount,
		UnmappedDSAProblemCount: b.UnmappedDSAProblemCount,
	}
	return nil
}

func (l *Loader) addDefect(file, ref, message string) {
	l.content.Defects = append(l.content.Defects, Defect{File: file, Ref: ref, Message: message})
}

func (l *Loader) addDefects(defects []Defect) {
	l.content.Defects = append(l.content.Defects, defects...)
}

// readYAML decodes a required YAML file, rejecting unknown fields
func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readOptionalYAML is like readYAML but treats a missing file as empty
func readOptionalYAML(path string, out interface{}) error {
	err := readYAML(path, out)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		slog.Warn("optional content file missing", "file", filepath.Base(path))
		return nil
	}
	return err
}
