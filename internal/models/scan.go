package models

import (
	"time"

	"github.com/crucial707/walti/internal/apierr"
)

// ResultOK is the result status of a scan that found nothing wrong.
const ResultOK = 200

// Scan is one execution result of a plugin against a target.
type Scan struct {
	ID           int         `json:"id"`
	Message      string      `json:"message"`
	Status       string      `json:"status"`
	StatusColor  StatusColor `json:"status_color"`
	ResultStatus int         `json:"result_status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// OK reports whether the scan finished with ResultOK.
func (s Scan) OK() bool {
	return s.ResultStatus == ResultOK
}

type scanJSON struct {
	ID           *int    `json:"id" validate:"required"`
	Message      *string `json:"message" validate:"required"`
	Status       *string `json:"status" validate:"required"`
	StatusColor  *string `json:"status_color" validate:"required"`
	ResultStatus *int    `json:"result_status" validate:"required"`
	CreatedAt    *string `json:"created_at" validate:"required"`
	UpdatedAt    *string `json:"updated_at" validate:"required"`
}

// DecodeScan builds a Scan from a JSON object.
func DecodeScan(data []byte) (Scan, error) {
	var in scanJSON
	if err := unmarshalStrict(data, &in, "scan"); err != nil {
		return Scan{}, err
	}

	color, err := ParseStatusColor(*in.StatusColor)
	if err != nil {
		return Scan{}, apierr.Wrap(err, "decode scan")
	}
	created, err := ParseTimestamp(*in.CreatedAt)
	if err != nil {
		return Scan{}, apierr.Wrap(err, "decode scan created_at")
	}
	updated, err := ParseTimestamp(*in.UpdatedAt)
	if err != nil {
		return Scan{}, apierr.Wrap(err, "decode scan updated_at")
	}

	return Scan{
		ID:           *in.ID,
		Message:      *in.Message,
		Status:       *in.Status,
		StatusColor:  color,
		ResultStatus: *in.ResultStatus,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}, nil
}
