package domain

// CategoryAll is the selector value matching every category.
const CategoryAll = "all"

type (
	Product struct {
		ID       int
		Name     string
		Brand    string
		Category string
		Price    float64
		Image    string
	}

	Category struct {
		Slug string
		Name string
	}
)

// CatalogQuery is the current filter state. An empty Term or a
// Category equal to [CategoryAll] means "no constraint".
type CatalogQuery struct {
	Term     string
	Category string
}

type CatalogPhase int

const (
	PhaseIdle CatalogPhase = iota
	PhaseLoading
	PhaseReady
)

func (p CatalogPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	}
	return "unknown"
}

// CatalogState is a point-in-time view snapshot. Err marks a "ready"
// state produced by a failed fetch.
type CatalogState struct {
	Phase    CatalogPhase
	Query    CatalogQuery
	Products []Product
	Err      bool
}
