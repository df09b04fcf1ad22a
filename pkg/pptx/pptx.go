// Package pptx extracts per-slide text and images from a base64-encoded
// PowerPoint archive. A .pptx file is a zip: slide XML lives under
// ppt/slides/, slide relationships under ppt/slides/_rels/, and media under
// ppt/media/.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Slide is the extracted content of one presentation slide. Images are
// base64 data URIs.
type Slide struct {
	Number  int      `json:"number"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

var (
	slidePathPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	textRunPattern   = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)
	embedPattern     = regexp.MustCompile(`r:embed="([^"]+)"`)
)

// Extract decodes a base64 payload (optionally carrying a data-URI prefix)
// and returns one entry per slide in deck order.
func Extract(payload string) ([]Slide, error) {
	if payload == "" {
		return nil, fmt.Errorf("no file data provided")
	}

	// Strip a data URL prefix such as
	// "data:application/vnd...presentation;base64,".
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	if !mimetype.Detect(data).Is("application/zip") {
		return nil, fmt.Errorf("payload is not a presentation archive")
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open presentation archive: %w", err)
	}

	files := make(map[string]*zip.File, len(archive.File))
	slidePaths := []string{}
	for _, file := range archive.File {
		files[file.Name] = file
		if slidePathPattern.MatchString(file.Name) {
			slidePaths = append(slidePaths, file.Name)
		}
	}

	sort.Slice(slidePaths, func(i, j int) bool {
		return slideNumber(slidePaths[i]) < slideNumber(slidePaths[j])
	})

	slides := make([]Slide, 0, len(slidePaths))
	for i, path := range slidePaths {
		xml, err := readZipFile(files[path])
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", path, err)
		}

		slides = append(slides, Slide{
			Number:  i + 1,
			Content: extractText(xml),
			Images:  extractImages(xml, slideNumber(path), files),
		})
	}

	return slides, nil
}

func slideNumber(path string) int {
	match := slidePathPattern.FindStringSubmatch(path)
	if match == nil {
		return 0
	}
	n, _ := strconv.Atoi(match[1])
	return n
}

func extractText(xml string) string {
	matches := textRunPattern.FindAllStringSubmatch(xml, -1)
	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		if match[1] != "" {
			texts = append(texts, match[1])
		}
	}
	return strings.Join(texts, "\n")
}

// extractImages resolves r:embed relationship IDs through the slide's .rels
// file to media entries, falling back to a direct ppt/media path when the
// relationships file is absent.
func extractImages(xml string, slideNum int, files map[string]*zip.File) []string {
	refs := []string{}
	for _, match := range embedPattern.FindAllStringSubmatch(xml, -1) {
		refs = append(refs, match[1])
	}

	images := []string{}
	relPath := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum)
	relFile, hasRels := files[relPath]

	if hasRels {
		relXML, err := readZipFile(relFile)
		if err != nil {
			return images
		}
		for _, ref := range refs {
			targetPattern := regexp.MustCompile(`Id="` + regexp.QuoteMeta(ref) + `"[^>]*Target="([^"]+)"`)
			match := targetPattern.FindStringSubmatch(relXML)
			if match == nil {
				continue
			}
			mediaPath := strings.Replace(match[1], "..", "ppt", 1)
			if uri, ok := mediaDataURI(files, mediaPath); ok {
				images = append(images, uri)
			}
		}
		return images
	}

	for _, ref := range refs {
		if uri, ok := mediaDataURI(files, "ppt/media/"+ref); ok {
			images = append(images, uri)
		}
	}
	return images
}

func mediaDataURI(files map[string]*zip.File, path string) (string, bool) {
	file, ok := files[path]
	if !ok {
		return "", false
	}

	data, err := readZipBytes(file)
	if err != nil {
		return "", false
	}

	imageType := "jpeg"
	switch {
	case strings.HasSuffix(path, ".png"):
		imageType = "png"
	case strings.HasSuffix(path, ".gif"):
		imageType = "gif"
	}

	return fmt.Sprintf("data:image/%s;base64,%s", imageType, base64.StdEncoding.EncodeToString(data)), true
}

func readZipFile(file *zip.File) (string, error) {
	data, err := readZipBytes(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readZipBytes(file *zip.File) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
