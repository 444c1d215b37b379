package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/clipmark/internal/app"
	"github.com/okian/clipmark/internal/domain/model"
)

const (
	formFileField     = "file"
	multipartMemLimit = 8 << 20
)

// lookup returns a request parameter by name, "" when absent.
type lookup func(name string) string

// readRequest builds a service request from either a multipart upload with
// form fields or a raw CSV body with query parameters.
func readRequest(w http.ResponseWriter, r *http.Request, maxBytes int64) (service.Request, error) {
	const op = "api.read_request"
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var (
		data []byte
		get  lookup
		err  error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		data, err = readMultipart(r)
		get = r.FormValue
	} else {
		data, err = io.ReadAll(r.Body)
		get = r.URL.Query().Get
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.Request{}, WrapKind(op, ErrTooLarge, err)
		}
		return service.Request{}, WrapKind(op, ErrBadRequest, err)
	}

	req, err := parseParams(get)
	if err != nil {
		return service.Request{}, WrapKind(op, ErrBadRequest, err)
	}
	req.Data = data
	return req, nil
}

func readMultipart(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(multipartMemLimit); err != nil {
		return nil, err
	}
	f, _, err := r.FormFile(formFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ErrMissingCSV
		}
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// parseParams reads the numeric parameters and one column name per role.
// Blank values leave the service defaults in place.
func parseParams(get lookup) (service.Request, error) {
	var (
		req service.Request
		err error
	)
	req.Encoding = strings.TrimSpace(get("encoding"))

	if req.FPS, err = floatParam(get, "fps"); err != nil {
		return req, err
	}
	if req.Pre, err = floatParam(get, "pre"); err != nil {
		return req, err
	}
	if req.Post, err = floatParam(get, "post"); err != nil {
		return req, err
	}
	if req.StartID, err = intParam(get, "start_id"); err != nil {
		return req, err
	}
	if req.PreviewRows, err = intParam(get, "preview"); err != nil {
		return req, err
	}
	if v := get("offset"); strings.TrimSpace(v) != "" {
		req.Offset = &v
	}

	for _, role := range model.Roles {
		if col := get(string(role)); col != "" {
			if req.Roles == nil {
				req.Roles = model.RoleMap{}
			}
			req.Roles[role] = col
		}
	}
	return req, nil
}

func floatParam(get lookup, name string) (*float64, error) {
	raw := strings.TrimSpace(get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	return &v, nil
}

func intParam(get lookup, name string) (*int, error) {
	raw := strings.TrimSpace(get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not an integer", name, raw)
	}
	return &v, nil
}
