package viewmodels

type Property struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	TypeKnown bool   `json:"typeKnown"`
	Name      string `json:"name"`
	SortIndex int    `json:"sortIndex"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ChartPoint is one already-shaped point for the client-side charts.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PortfolioPage is the payload the view router consumes: the property
// list plus the reconciled, validated selection. An empty SelectedID
// means "render a selection prompt".
type PortfolioPage struct {
	Properties      []*Property `json:"properties"`
	Loading         bool        `json:"loading"`
	Error           string      `json:"error,omitempty"`
	SelectedID      string      `json:"selectedId"`
	Selected        *Property   `json:"selected,omitempty"`
	SelectionPrompt bool        `json:"selectionPrompt"`
}
