package types

// NarrativeContent is the structured treatment description attached to
// role-shaped payloads. After normalization the generator guarantees
// len(Steps)+len(Precautions) >= 10.
type NarrativeContent struct {
	SpeciesName string   `json:"speciesName"`
	About       string   `json:"about"`
	Cause       string   `json:"cause"`
	Curability  string   `json:"curability"`
	Steps       []string `json:"steps"`
	Precautions []string `json:"precautions"`
}
