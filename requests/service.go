package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	neturl "net/url"
	"path"
	"strconv"
	"strings"

	"github.com/viant/sessionauth/backend"
	"github.com/viant/sessionauth/schema"
	"github.com/viant/sessionauth/state"
)

const (
	// MaxLimit is the largest page the backend serves.
	MaxLimit = 100
	// SourceExtension is the only accepted upload type.
	SourceExtension = ".sol"

	requestsPath = "api/v1/requests"
	maxBody      = 64 * 1024 * 1024
)

// ListParams filters List.
type ListParams struct {
	Limit  int
	Offset int
	Status string
}

func (p *ListParams) query() neturl.Values {
	values := neturl.Values{}
	if p == nil {
		return values
	}
	if limit := p.Limit; limit > 0 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		values.Set("limit", strconv.Itoa(limit))
	}
	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Status != "" {
		values.Set("status", p.Status)
	}
	return values
}

// Service calls the request tracking endpoints.
type Service struct {
	client *backend.Client
	store  *state.Store
}

// New creates a request service; store supplies the signed-in user id.
func New(client *backend.Client, store *state.Store) *Service {
	return &Service{client: client, store: store}
}

func (s *Service) userPath() (string, error) {
	user, ok := s.store.User()
	if !ok {
		return "", schema.ErrNotAuthenticated
	}
	return "api/v1/user/" + neturl.PathEscape(user.ID) + "/requests", nil
}

// Mine lists the signed-in user's requests.
func (s *Service) Mine(ctx context.Context) ([]*schema.Request, error) {
	userPath, err := s.userPath()
	if err != nil {
		return nil, err
	}
	var result []*schema.Request
	if err = s.getJSON(ctx, "mine", userPath, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Create uploads a source file as a new request for the signed-in user.
func (s *Service) Create(ctx context.Context, fileName string, source io.Reader) (*schema.Request, error) {
	if !strings.HasSuffix(fileName, SourceExtension) {
		return nil, fmt.Errorf("invalid file type %q, expected %s", fileName, SourceExtension)
	}
	userPath, err := s.userPath()
	if err != nil {
		return nil, err
	}
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", path.Base(fileName))
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(part, source); err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", fileName, err)
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}
	resp, err := s.client.Do(ctx, http.MethodPut, userPath, nil, body, writer.FormDataContentType())
	if err != nil {
		return nil, &schema.NetworkError{Op: "create", Err: err}
	}
	defer resp.Body.Close()
	if !backend.IsSuccess(resp.StatusCode) {
		return nil, failure("create", resp)
	}
	created := &schema.Request{}
	if err = json.NewDecoder(resp.Body).Decode(created); err != nil {
		return nil, &schema.NetworkError{Op: "create", StatusCode: resp.StatusCode, Err: err}
	}
	return created, nil
}

// List lists requests across users; the limit is capped at MaxLimit.
func (s *Service) List(ctx context.Context, params *ListParams) ([]*schema.Request, error) {
	var result []*schema.Request
	if err := s.getJSON(ctx, "list", requestsPath, params.query(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a request by id.
func (s *Service) Get(ctx context.Context, id string) (*schema.Request, error) {
	if id == "" {
		return nil, errors.New("request id was empty")
	}
	result := &schema.Request{}
	if err := s.getJSON(ctx, "get", requestsPath+"/"+neturl.PathEscape(id), nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Logs returns the analysis log of a request.
func (s *Service) Logs(ctx context.Context, id string) (string, error) {
	data, err := s.artifact(ctx, id, "logs")
	return string(data), err
}

// Source returns the uploaded source of a request.
func (s *Service) Source(ctx context.Context, id string) (string, error) {
	data, err := s.artifact(ctx, id, "source")
	return string(data), err
}

// Report returns the generated report of a request.
func (s *Service) Report(ctx context.Context, id string) ([]byte, error) {
	return s.artifact(ctx, id, "report")
}

func (s *Service) artifact(ctx context.Context, id, name string) ([]byte, error) {
	if id == "" {
		return nil, errors.New("request id was empty")
	}
	resp, err := s.client.Do(ctx, http.MethodGet, requestsPath+"/"+neturl.PathEscape(id)+"/"+name, nil, nil, "")
	if err != nil {
		return nil, &schema.NetworkError{Op: name, Err: err}
	}
	defer resp.Body.Close()
	if !backend.IsSuccess(resp.StatusCode) {
		return nil, failure(name, resp)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &schema.NetworkError{Op: name, StatusCode: resp.StatusCode, Err: err}
	}
	return data, nil
}

func (s *Service) getJSON(ctx context.Context, op, endpoint string, query neturl.Values, target any) error {
	resp, err := s.client.Do(ctx, http.MethodGet, endpoint, query, nil, "")
	if err != nil {
		return &schema.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if !backend.IsSuccess(resp.StatusCode) {
		return failure(op, resp)
	}
	if err = json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &schema.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func failure(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	errResponse := &schema.ErrorResponse{}
	if json.Unmarshal(data, errResponse) == nil && errResponse.Error != "" {
		return &schema.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(errResponse.Error)}
	}
	return &schema.NetworkError{Op: op, StatusCode: resp.StatusCode}
}
