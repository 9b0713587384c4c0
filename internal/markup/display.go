package markup

// Display holds the per-markup rendering attributes. It is a pure value
// object; every default below is a literal from the external tool's schema.
type Display struct {
	Visibility                              bool       `json:"visibility"`
	Opacity                                 float64    `json:"opacity"`
	Color                                   [3]float64 `json:"color"`
	SelectedColor                           [3]float64 `json:"selectedColor"`
	ActiveColor                             [3]float64 `json:"activeColor"`
	PropertiesLabelVisibility               bool       `json:"propertiesLabelVisibility"`
	PointLabelsVisibility                   bool       `json:"pointLabelsVisibility"`
	TextScale                               float64    `json:"textScale"`
	GlyphType                               string     `json:"glyphType"`
	GlyphScale                              float64    `json:"glyphScale"`
	SliceProjection                         bool       `json:"sliceProjection"`
	SliceProjectionUseFiducialColor         bool       `json:"sliceProjectionUseFiducialColor"`
	SliceProjectionOutlinedBehindSlicePlane bool       `json:"sliceProjectionOutlinedBehindSlicePlane"`
	SliceProjectionColor                    [3]float64 `json:"sliceProjectionColor"`
	SliceProjectionOpacity                  float64    `json:"sliceProjectionOpacity"`
	LineThickness                           float64    `json:"lineThickness"`
	LineColorFadingStart                    float64    `json:"lineColorFadingStart"`
	LineColorFadingEnd                      float64    `json:"lineColorFadingEnd"`
	LineColorFadingSaturation               float64    `json:"lineColorFadingSaturation"`
	LineColorFadingHueOffset                float64    `json:"lineColorFadingHueOffset"`
	HandlesInteractive                      bool       `json:"handlesInteractive"`
	TranslationHandleVisibility             bool       `json:"translationHandleVisibility"`
	RotationHandleVisibility                bool       `json:"rotationHandleVisibility"`
	ScaleHandleVisibility                   bool       `json:"scaleHandleVisibility"`
	InteractionHandleScale                  float64    `json:"interactionHandleScale"`
	SnapMode                                string     `json:"snapMode"`
}

// DefaultDisplay returns a fresh Display per call so no two markups ever
// alias the same value.
func DefaultDisplay() Display {
	return Display{
		Visibility:                      true,
		Opacity:                         1.0,
		Color:                           DefaultColor,
		SelectedColor:                   DefaultSelectedColor,
		ActiveColor:                     DefaultColor,
		PropertiesLabelVisibility:       true,
		TextScale:                       DefaultScale,
		GlyphType:                       DefaultGlyphType,
		GlyphScale:                      DefaultScale,
		SliceProjectionUseFiducialColor: true,
		SliceProjectionColor:            DefaultProjectionColor,
		SliceProjectionOpacity:          DefaultSliceOpacity,
		LineThickness:                   DefaultThickness,
		LineColorFadingStart:            1.0,
		LineColorFadingEnd:              10.0,
		LineColorFadingSaturation:       1.0,
		TranslationHandleVisibility:     true,
		RotationHandleVisibility:        true,
		ScaleHandleVisibility:           true,
		InteractionHandleScale:          DefaultScale,
		SnapMode:                        DefaultSnapMode,
	}
}
