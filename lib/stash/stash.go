// Package stash models the boundary between a scraper binary and the
// stash host: the operations it can be invoked with, the scene fragment
// it receives on stdin and the scraped record it prints to stdout.
package stash

import (
	"encoding/json"
	"fmt"
	"io"
)

// Operation is a scraping action the host requests on argv.
type Operation string

const (
	SceneByFragment Operation = "scene-by-fragment"
	SceneByURL      Operation = "scene-by-url"
)

// Operations returns every operation this scraper implements.
func Operations() []Operation {
	return []Operation{SceneByFragment, SceneByURL}
}

// ParseOperation maps an argv string onto the closed operation set.
func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations() {
		if s == string(op) {
			return op, nil
		}
	}
	return "", fmt.Errorf("unrecognized operation %q", s)
}

// SceneFragment is the partial scene the host pipes in on stdin. Any
// field may be empty.
type SceneFragment struct {
	Url   string      `json:"url,omitempty"`
	Code  string      `json:"code,omitempty"`
	Title string      `json:"title,omitempty"`
	Files []SceneFile `json:"files,omitempty"`
}

// SceneFile is one of the media files the host has attached to a scene.
type SceneFile struct {
	Path string `json:"path"`
}

type ScrapedTag struct {
	Name string `json:"name"`
}

type ScrapedPerformer struct {
	Name string   `json:"name"`
	Urls []string `json:"urls"`
}

type ScrapedStudio struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

// ScrapedScene is the record handed back to the host. This scraper
// always fills in every field, so none of them are omitempty.
type ScrapedScene struct {
	Title      string             `json:"title"`
	Date       string             `json:"date"`
	Tags       []ScrapedTag       `json:"tags"`
	Performers []ScrapedPerformer `json:"performers"`
	Studio     ScrapedStudio      `json:"studio"`
	Director   string             `json:"director"`
	Code       string             `json:"code"`
	Image      string             `json:"image"`
	Url        string             `json:"url"`
}

// ReadFragment decodes the fragment JSON the host writes to stdin.
func ReadFragment(r io.Reader) (SceneFragment, error) {
	var frag SceneFragment
	err := json.NewDecoder(r).Decode(&frag)
	if err != nil {
		return SceneFragment{}, fmt.Errorf("decode fragment: %w", err)
	}
	return frag, nil
}

// WriteScene prints the scene as a single line of JSON, the only bytes
// the host will read from stdout.
func WriteScene(w io.Writer, scene ScrapedScene) error {
	out, err := json.Marshal(scene)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
