package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/BoxPack/internal/importer"
	"github.com/piwi3910/BoxPack/internal/model"
)

// ErrInvalidBoxSpec is returned for a --box value that does not parse.
var ErrInvalidBoxSpec = errors.New("invalid box spec")

// parseBoxSpec parses a --box value: "HxW", "HxW*N", "label:HxW" or
// "label:HxW*N". Boxes without a label are named after their dimensions.
func parseBoxSpec(spec string) ([]model.Box, error) {
	s := strings.TrimSpace(spec)

	label := ""
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		label = strings.TrimSpace(s[:i])
		s = strings.TrimSpace(s[i+1:])
	}

	qty := 1
	if i := strings.IndexByte(s, '*'); i >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w %q: quantity must be a positive integer", ErrInvalidBoxSpec, spec)
		}
		if n > importer.MaxQuantity {
			return nil, fmt.Errorf("%w %q: quantity exceeds %d", ErrInvalidBoxSpec, spec, importer.MaxQuantity)
		}
		qty = n
		s = s[:i]
	}

	dims := strings.Split(strings.ToLower(s), "x")
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w %q: want HEIGHTxWIDTH", ErrInvalidBoxSpec, spec)
	}
	h, errH := strconv.Atoi(strings.TrimSpace(dims[0]))
	w, errW := strconv.Atoi(strings.TrimSpace(dims[1]))
	if errH != nil || errW != nil {
		return nil, fmt.Errorf("%w %q: dimensions must be integers", ErrInvalidBoxSpec, spec)
	}
	if label == "" {
		label = fmt.Sprintf("%dx%d", h, w)
	}

	boxes := make([]model.Box, 0, qty)
	for i := 0; i < qty; i++ {
		b, err := model.NewBox(label, h, w)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidBoxSpec, spec, err)
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}

// collectBoxes gathers boxes from import files and --box specs, in that
// order. Import warnings are logged; any import error fails the whole run.
func collectBoxes(logger *log.Logger, files, specs []string) ([]model.Box, error) {
	var boxes []model.Box

	for _, path := range files {
		result := importer.ImportFile(path)
		for _, w := range result.Warnings {
			logger.Warn(w, "file", path)
		}
		if len(result.Errors) > 0 {
			return nil, fmt.Errorf("import %s: %s", path, strings.Join(result.Errors, "; "))
		}
		logger.Debug("imported boxes", "file", path, "count", len(result.Boxes))
		boxes = append(boxes, result.Boxes...)
	}

	for _, spec := range specs {
		parsed, err := parseBoxSpec(spec)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, parsed...)
	}

	return boxes, nil
}
