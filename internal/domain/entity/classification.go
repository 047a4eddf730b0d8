package entity

// ClassificationSource tells how a chain name was obtained.
type ClassificationSource string

const (
	SourceSignature      ClassificationSource = "signature"
	SourceDisambiguation ClassificationSource = "disambiguation"
	SourceManual         ClassificationSource = "manual"
	SourceOverride       ClassificationSource = "override"
)

// Classification is the outcome of classifying an address.
type Classification struct {
	Address    string               `json:"address"`
	Chain      string               `json:"chain"`
	Source     ClassificationSource `json:"source"`
	Candidates []string             `json:"candidates,omitempty"`
}
