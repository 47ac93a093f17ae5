package dongchedi

import "io"

// RecordRenderer turns an assembled record into a styled report document.
// The shipped implementation renders markdown; PDF layout is an external
// collaborator behind this same boundary.
type RecordRenderer interface {
	Render(w io.Writer, rec *VehicleRecord) error
}
