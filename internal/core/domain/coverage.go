package domain

// KindCoverage breaks coverage down for one block kind.
type KindCoverage struct {
	Total        int `json:"total"`
	Translatable int `json:"translatable"`
	Complete     int `json:"complete"`
	Stale        int `json:"stale"`
}

// Coverage reports how much of a segmented document carries a current
// processed text.
type Coverage struct {
	Total        int     `json:"total_blocks"`
	Translatable int     `json:"translatable_blocks"`
	Complete     int     `json:"complete_blocks"`
	Stale        int     `json:"stale_blocks"`
	Untranslated int     `json:"untranslated_blocks"`
	Percentage   float64 `json:"coverage_percentage"`

	ByKind map[BlockKind]*KindCoverage `json:"by_kind"`
}
