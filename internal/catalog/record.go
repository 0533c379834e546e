// Package catalog holds the loaded plant records and the search filter over
// them.
package catalog

// PlantRecord is one entry of the plant dataset. ID is unique within a
// loaded catalog; records are never mutated after load.
type PlantRecord struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ScientificName  string   `json:"scientificName"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	// ModelURL is accepted but unused by the procedural renderer.
	ModelURL string `json:"modelUrl,omitempty"`
}
