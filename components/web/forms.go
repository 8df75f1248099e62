package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/goliatone/go-commerce-admin/components/catalog"
)

const multipartMemory = 8 << 20

// Form is a decoded page submission.
type Form struct {
	Values url.Values
	Files  map[string]*catalog.ImageUpload
}

// Get returns the first value for key, or "".
func (f Form) Get(key string) string {
	if f.Values == nil {
		return ""
	}
	return f.Values.Get(key)
}

// Action is the submitted "action" field.
func (f Form) Action() string {
	return strings.TrimSpace(f.Get("action"))
}

// File returns the upload stored under key. Empty uploads are treated as
// absent.
func (f Form) File(key string) *catalog.ImageUpload {
	if f.Files == nil {
		return nil
	}
	return f.Files[key]
}

// Draft collects the create-dialog fields.
func (f Form) Draft() catalog.Draft {
	return catalog.Draft{
		Name:        f.Get("name"),
		Price:       f.Get("price"),
		Category:    f.Get("category"),
		Stock:       f.Get("stock"),
		Description: f.Get("description"),
		Image:       f.File("image"),
	}
}

// ParseForm decodes a urlencoded or multipart body. A missing content type is
// read as urlencoded.
func ParseForm(contentType string, body []byte) (Form, error) {
	form := Form{Values: url.Values{}, Files: map[string]*catalog.ImageUpload{}}
	if len(bytes.TrimSpace(body)) == 0 {
		return form, nil
	}
	mediaType := "application/x-www-form-urlencoded"
	params := map[string]string{}
	if strings.TrimSpace(contentType) != "" {
		var err error
		mediaType, params, err = mime.ParseMediaType(contentType)
		if err != nil {
			return form, fmt.Errorf("web: content type: %w", err)
		}
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return form, fmt.Errorf("web: parse form: %w", err)
		}
		form.Values = values
		return form, nil
	case "multipart/form-data":
		boundary := params["boundary"]
		if boundary == "" {
			return form, errors.New("web: multipart boundary is missing")
		}
		mf, err := multipart.NewReader(bytes.NewReader(body), boundary).ReadForm(multipartMemory)
		if err != nil {
			return form, fmt.Errorf("web: parse multipart: %w", err)
		}
		defer mf.RemoveAll()
		for key, values := range mf.Value {
			form.Values[key] = values
		}
		for key, headers := range mf.File {
			if len(headers) == 0 || headers[0].Size == 0 {
				continue
			}
			upload, err := readUpload(headers[0])
			if err != nil {
				return form, err
			}
			form.Files[key] = upload
		}
		return form, nil
	default:
		return form, fmt.Errorf("web: unsupported content type %q", mediaType)
	}
}

// readUpload reads at most one byte past the image limit so oversize files
// still fail validation without being buffered whole.
func readUpload(header *multipart.FileHeader) (*catalog.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("web: open upload %s: %w", header.Filename, err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, catalog.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("web: read upload %s: %w", header.Filename, err)
	}
	return &catalog.ImageUpload{Filename: header.Filename, Data: data}, nil
}
