package queries

// GetGraphDataQuery asks for a full visualization snapshot of the graph.
type GetGraphDataQuery struct{}

// Validate validates the query.
func (q GetGraphDataQuery) Validate() error { return nil }

// GetGraphDataResult is the complete snapshot for a graph view.
type GetGraphDataResult struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
	Stats GraphStats  `json:"stats"`
}

// GraphNode is one renderable vertex.
type GraphNode struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	EntityType string  `json:"entity_type"`
	Amplitude  float64 `json:"amplitude"`
	Resistance float64 `json:"resistance"`
	Note       string  `json:"note"`
	Octave     int     `json:"octave"`
}

// GraphLink is one renderable edge. Links whose far end was deleted are
// omitted from the snapshot.
type GraphLink struct {
	ID               string  `json:"id"`
	Source           string  `json:"source"`
	Target           string  `json:"target"`
	RelationshipType string  `json:"relationship_type"`
	Amplitude        float64 `json:"amplitude"`
}

// GraphStats summarizes the snapshot.
type GraphStats struct {
	NodeCount    int     `json:"node_count"`
	LinkCount    int     `json:"link_count"`
	ThoughtCount int     `json:"thought_count"`
	TotalStrain  float64 `json:"total_strain"`
}
