package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConversionRecord is one converted input file within a run.
type ConversionRecord struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	RunID      string         `json:"runId" gorm:"size:36;index:idx_conversion_run_id"`
	SourcePath string         `json:"sourcePath" gorm:"size:512"`
	MarkupType string         `json:"markupType" gorm:"size:32"`
	PointCount int            `json:"pointCount"`
	Swapped    bool           `json:"swapped"`
	OutputPath string         `json:"outputPath" gorm:"size:512"`
	Points     datatypes.JSON `json:"points"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// NewRunID returns a fresh identifier shared by all records of one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// EncodePoints serializes flattened point triples for the Points column.
func EncodePoints(points [][]float64) (datatypes.JSON, error) {
	data, err := json.Marshal(points)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
