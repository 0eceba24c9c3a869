package dto

import (
	"parking/shared/constant"
	"parking/shared/model"
	"parking/shared/timezone"
)

// Metadata renders model.Metadata with timestamps in the application timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(src model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(src.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(src.ModifiedAt, constant.DateFormat),
		CreatedBy:  src.CreatedBy,
		ModifiedBy: src.ModifiedBy,
	}
}
