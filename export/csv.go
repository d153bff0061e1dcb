// Package export writes incident reports in the CSV shape coordinators
// import into their spreadsheets.
package export

import (
	"encoding/csv"
	"io"

	"github.com/shomrim/patrol-cad-client/models"
)

var csvHeader = []string{"ID", "SH-CAD", "Title", "Type", "Status", "Address", "Created At", "Created By"}

const createdAtLayout = "02 Jan 2006 15:04"

// WriteCSV writes one row per incident, in the order given.
func WriteCSV(w io.Writer, incidents []models.Incident) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range incidents {
		inc := &incidents[i]
		row := []string{
			inc.ID,
			inc.Shcad,
			inc.Title,
			inc.Type,
			inc.Status,
			inc.Address,
			inc.CreatedAt.Format(createdAtLayout),
			inc.CreatedBy,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
