package foundation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// NodeRecord is one entry of the bulk dataset format: a mapping from
// concept id to its title, edges, and precomputed hierarchy statistics.
type NodeRecord struct {
	Title           string   `json:"title"`
	Parents         []string `json:"parents"`
	Children        []string `json:"children"` // ordered, authoritative
	DescendantCount int      `json:"descendantCount"`
	Height          int      `json:"height"`
	Depth           int      `json:"depth"`
	MaxDepth        int      `json:"maxDepth"`
}

// Dataset is the bulk ingest format, keyed by concept id.
type Dataset map[string]NodeRecord

// ReadDataset decodes a dataset from r.
func ReadDataset(r io.Reader) (Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// ReadDatasetFile reads and decodes a dataset from a JSON file.
func ReadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}

// WriteDataset encodes the dataset as JSON to w.
func WriteDataset(ds Dataset, w io.Writer) error {
	if err := json.NewEncoder(w).Encode(ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// WriteDatasetFile writes the dataset to a JSON file with 0644 permissions.
func WriteDatasetFile(ds Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDataset(ds, f)
}
