package domain

// Input domains accepted by the form.
const (
	MinRating     = 1.0
	MaxRating     = 5.0
	MinGeneration = 0
	MaxGeneration = 13
	MinWarranty   = 0
	MaxWarranty   = 3
)

// FeatureCount is the number of columns the model artifact expects.
const FeatureCount = 9

// featureColumns are the column names the model was fit with, in row order.
var featureColumns = [FeatureCount]string{
	"Rating_scaled",
	"Generation",
	"Core",
	"Ram",
	"SSD",
	"Display",
	"Graphics",
	"OS",
	"warranty_int",
}

// Selection is one submission of the form: a label per categorical feature
// plus the numeric inputs.
type Selection struct {
	Core       string  `json:"core" yaml:"core"`
	RAM        string  `json:"ram" yaml:"ram"`
	SSD        string  `json:"ssd" yaml:"ssd"`
	Display    string  `json:"display" yaml:"display"`
	Graphics   string  `json:"graphics" yaml:"graphics"`
	OS         string  `json:"os" yaml:"os"`
	Generation int     `json:"generation" yaml:"generation"`
	Warranty   int     `json:"warranty" yaml:"warranty"`
	Rating     float64 `json:"rating" yaml:"rating"`
}

// DefaultSelection returns the preselected values shown by the form.
func DefaultSelection() Selection {
	return Selection{
		Core:       CoreCategory.labels[3],
		RAM:        RAMCategory.labels[2],
		SSD:        SSDCategory.labels[2],
		Display:    DisplayCategory.labels[0],
		Graphics:   GraphicsCategory.labels[1],
		OS:         OSCategory.labels[1],
		Generation: 11,
		Warranty:   1,
		Rating:     4.2,
	}
}

// FeatureRow is the ordered numeric row passed to the model. Field order is
// the column order; the rating is stored already scaled to [0, 1].
type FeatureRow struct {
	RatingScaled float64 `json:"Rating_scaled"`
	Generation   int     `json:"Generation"`
	Core         int     `json:"Core"`
	RAM          int     `json:"Ram"`
	SSD          int     `json:"SSD"`
	Display      int     `json:"Display"`
	Graphics     int     `json:"Graphics"`
	OS           int     `json:"OS"`
	Warranty     int     `json:"warranty_int"`
}

// BuildFeatureRow encodes a selection. Labels must already be canonical.
func BuildFeatureRow(sel Selection) FeatureRow {
	return FeatureRow{
		RatingScaled: ScaleRating(sel.Rating),
		Generation:   sel.Generation,
		Core:         CoreCategory.Encode(sel.Core),
		RAM:          RAMCategory.Encode(sel.RAM),
		SSD:          SSDCategory.Encode(sel.SSD),
		Display:      DisplayCategory.Encode(sel.Display),
		Graphics:     GraphicsCategory.Encode(sel.Graphics),
		OS:           OSCategory.Encode(sel.OS),
		Warranty:     sel.Warranty,
	}
}

// ScaleRating maps a rating from [1, 5] onto [0, 1].
func ScaleRating(rating float64) float64 {
	return (rating - MinRating) / (MaxRating - MinRating)
}

// UnscaleRating is the inverse of ScaleRating.
func UnscaleRating(scaled float64) float64 {
	return scaled*(MaxRating-MinRating) + MinRating
}

// Values returns the row as model input, in column order.
func (r FeatureRow) Values() []float32 {
	return []float32{
		float32(r.RatingScaled),
		float32(r.Generation),
		float32(r.Core),
		float32(r.RAM),
		float32(r.SSD),
		float32(r.Display),
		float32(r.Graphics),
		float32(r.OS),
		float32(r.Warranty),
	}
}

// FeatureColumns returns the fitted column names in row order.
func FeatureColumns() []string {
	out := make([]string, FeatureCount)
	copy(out, featureColumns[:])
	return out
}
