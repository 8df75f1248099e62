package catalog

// Draft holds the raw create-form inputs exactly as submitted.
type Draft struct {
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	Category    string       `json:"category"`
	Stock       string       `json:"stock"`
	Description string       `json:"description"`
	Image       *ImageUpload `json:"-"`
}

// ImageUpload is an optional file attached to the create form.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// DialogState is a snapshot of the create dialog.
type DialogState struct {
	Open   bool
	Draft  Draft
	Errors map[string]string
}

// Error returns the message recorded for a field, if any.
func (d DialogState) Error(field string) string {
	if d.Errors == nil {
		return ""
	}
	return d.Errors[field]
}

func (d Draft) clone() Draft {
	if d.Image != nil {
		img := *d.Image
		img.Data = append([]byte(nil), d.Image.Data...)
		d.Image = &img
	}
	return d
}
