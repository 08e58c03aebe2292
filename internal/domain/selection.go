package domain

// VideoModel is one entry of the fixed generation model catalog.
type VideoModel struct {
	ID   string
	Name string
}

// Models is the catalog of selectable generation models.
var Models = []VideoModel{
	{ID: "kling_v2.1_std", Name: "Kling v2.1 Std"},
	{ID: "kling_v2.1_pro", Name: "Kling v2.1 Pro"},
	{ID: "kling_v2.5_pro", Name: "Kling v2.5 Pro"},
	{ID: "kling_v2.6_pro", Name: "Kling v2.6 Pro"},
	{ID: "hailuo_2.3", Name: "Hailuo 2.3"},
	{ID: "seedance_pro", Name: "Seedance Pro"},
	{ID: "seedance_1.5", Name: "Seedance 1.5"},
}

// Durations holds the selectable clip lengths in seconds.
var Durations = []string{"5", "10"}

// ValidModel reports whether id names a catalog model.
func ValidModel(id string) bool {
	for _, m := range Models {
		if m.ID == id {
			return true
		}
	}
	return false
}

// ValidDuration reports whether d is a selectable duration.
func ValidDuration(d string) bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}

// Selection holds one user's in-progress request configuration. Fields are
// filled in whatever order the user makes choices; the request may only be
// submitted once Complete reports true.
type Selection struct {
	PhotoID  string
	Prompt   string
	Model    string
	Duration string
}

// Complete reports whether model, duration and photo are all present.
func (s Selection) Complete() bool {
	return s.Model != "" && s.Duration != "" && s.PhotoID != ""
}
