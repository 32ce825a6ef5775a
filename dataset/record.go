package dataset

import (
	"io"
	"time"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// RequestTimeLayout is the timestamp format used throughout the 311 extract,
// e.g. "10/31/2013 02:08:41 PM". Parsing is strict: a non-empty cell that
// does not match this layout is a load error.
const RequestTimeLayout = "01/02/2006 03:04:05 PM"

// sentinelYear marks the placeholder close date ("01/01/1900 12:00:00 AM")
// the source system writes for requests that were never actually closed.
const sentinelYear = 1900

// ServiceRequest is one row of the 311 extract, typed and validated.
type ServiceRequest struct {
	UniqueKey     int64
	CreatedDate   time.Time
	ClosedDate    time.Time // zero when missing or sentinel
	Agency        string
	ComplaintType string
	Descriptor    string
	Borough       string
}

// ServiceRequestSchema is the expected layout of the 311 extract.
func ServiceRequestSchema() Schema {
	return Schema{
		{Name: "Unique Key", Kind: Int},
		{Name: "Created Date", Kind: Time, TimeLayout: RequestTimeLayout},
		{Name: "Closed Date", Kind: Time, TimeLayout: RequestTimeLayout},
		{Name: "Agency", Kind: String},
		{Name: "Complaint Type", Kind: String},
		{Name: "Descriptor", Kind: String},
		{Name: "Borough", Kind: String},
	}
}

// ServiceRequestsFromTable converts a schema-validated table into typed
// records. The sentinel 1900 close date is normalized to a missing (zero)
// ClosedDate here, so downstream aggregations never see it.
func ServiceRequestsFromTable(t *Table) ([]ServiceRequest, error) {
	keys, err := t.Ints("Unique Key")
	if err != nil {
		return nil, err
	}
	created, err := t.Times("Created Date")
	if err != nil {
		return nil, err
	}
	closed, err := t.Times("Closed Date")
	if err != nil {
		return nil, err
	}
	agency, err := t.Strings("Agency")
	if err != nil {
		return nil, err
	}
	complaint, err := t.Strings("Complaint Type")
	if err != nil {
		return nil, err
	}
	descriptor, err := t.Strings("Descriptor")
	if err != nil {
		return nil, err
	}
	borough, err := t.Strings("Borough")
	if err != nil {
		return nil, err
	}

	reqs := make([]ServiceRequest, t.NumRows())
	for i := range reqs {
		closedAt := closed[i]
		if !closedAt.IsZero() && closedAt.Year() <= sentinelYear {
			closedAt = time.Time{}
		}
		reqs[i] = ServiceRequest{
			UniqueKey:     keys[i],
			CreatedDate:   created[i],
			ClosedDate:    closedAt,
			Agency:        agency[i],
			ComplaintType: complaint[i],
			Descriptor:    descriptor[i],
			Borough:       borough[i],
		}
	}
	return reqs, nil
}

// ReadServiceRequests loads and types the 311 extract in one call.
func ReadServiceRequests(r io.Reader) ([]ServiceRequest, error) {
	t, err := ReadTable(r, ServiceRequestSchema())
	if err != nil {
		return nil, err
	}
	return ServiceRequestsFromTable(t)
}

// Closed reports whether the request has a usable close date.
func (r *ServiceRequest) Closed() bool {
	return !r.ClosedDate.IsZero()
}

// Anomalous reports whether the record claims to be closed before it was
// opened. Such rows exist in the source data and are excluded from duration
// statistics rather than contributing negative durations.
func (r *ServiceRequest) Anomalous() bool {
	return r.Closed() && r.ClosedDate.Before(r.CreatedDate)
}

// Resolution returns the open-to-close duration.
func (r *ServiceRequest) Resolution() (time.Duration, error) {
	if !r.Closed() {
		return 0, errors.Newf("service request %d is not closed", r.UniqueKey)
	}
	if r.Anomalous() {
		return 0, errors.Newf("service request %d closed before it was created", r.UniqueKey)
	}
	return r.ClosedDate.Sub(r.CreatedDate), nil
}
