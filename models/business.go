package models

// Department status labels derived from queue occupancy.
const (
	DeptStatusAvailable = "Available"
	DeptStatusModerate  = "Moderate"
	DeptStatusBusy      = "Busy"
	DeptStatusFull      = "Full"
)

// Business is a queue-operating business as returned by the upstream
// directory endpoint, with its bookable departments nested.
type Business struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category,omitempty"`
	Address     string       `json:"address,omitempty"`
	Rating      float64      `json:"rating,omitempty"`
	Departments []Department `json:"departments"`
}

// Department is a single bookable service queue within a business.
type Department struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	CurrentQueueSize int     `json:"currentQueueSize"`
	MaxQueueSize     int     `json:"maxQueueSize"`
	EstimatedWait    int     `json:"estimatedWait"` // minutes
	Price            float64 `json:"price,omitempty"`
}

// IsFull reports whether the department can accept no further customers.
// Departments advertising a non-positive capacity are treated as full.
func (d Department) IsFull() bool {
	return d.MaxQueueSize <= 0 || d.CurrentQueueSize >= d.MaxQueueSize
}

// Status derives the display label from the occupancy ratio.
func (d Department) Status() string {
	if d.MaxQueueSize <= 0 {
		return DeptStatusFull
	}
	ratio := float64(d.CurrentQueueSize) / float64(d.MaxQueueSize)
	switch {
	case ratio >= 0.9:
		return DeptStatusFull
	case ratio >= 0.7:
		return DeptStatusBusy
	case ratio >= 0.3:
		return DeptStatusModerate
	default:
		return DeptStatusAvailable
	}
}

// DepartmentView decorates a department with derived display fields for the
// directory listing.
type DepartmentView struct {
	Department
	Status     string `json:"status"`
	Selectable bool   `json:"selectable"`
}

// BusinessView is a business with decorated departments.
type BusinessView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category,omitempty"`
	Address     string           `json:"address,omitempty"`
	Rating      float64          `json:"rating,omitempty"`
	Departments []DepartmentView `json:"departments"`
}

// View builds the decorated directory representation of a business.
func (b Business) View() BusinessView {
	view := BusinessView{
		ID:       b.ID,
		Name:     b.Name,
		Category: b.Category,
		Address:  b.Address,
		Rating:   b.Rating,
	}
	view.Departments = make([]DepartmentView, 0, len(b.Departments))
	for _, d := range b.Departments {
		view.Departments = append(view.Departments, DepartmentView{
			Department: d,
			Status:     d.Status(),
			Selectable: !d.IsFull(),
		})
	}
	return view
}
