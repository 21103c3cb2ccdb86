package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/dblmodel/internal/document"
)

// fileReport is the JSON form of a validation report for one file.
type fileReport struct {
	File string `json:"file"`
	document.Report
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeReport prints the outcome of validating the model file at path.
func writeReport(w io.Writer, path string, r document.Report, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, fileReport{File: path, Report: r})
	}
	status := "valid"
	if !r.Valid {
		status = "invalid"
	}
	fmt.Fprintf(w, "%s: %s (%s, %d objects, %d morphisms, %d equations)\n",
		path, status, r.Theory, r.Objects, r.Morphisms, r.Equations)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e.Error())
	}
	return nil
}

// loadModel reads and builds the model file at path, mapping failures to
// user errors.
func loadModel(path string) (*document.Model, error) {
	f, err := document.Load(path)
	if err != nil {
		return nil, exitErr(exitUserError, err)
	}
	m, err := document.Build(f)
	if err != nil {
		return nil, exitErr(exitUserError, fmt.Errorf("building %s: %w", path, err))
	}
	return m, nil
}
