package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Descriptor carries the operation metadata a lifecycle controller needs
// when it is bound to a form: identity, the submission target, whether the
// operation edits an existing resource, and the fields the request schema
// requires.
type Descriptor struct {
	OperationID    string
	Method         string
	Path           string
	Summary        string
	RequiredFields []string
	IsEditing      bool
}

// DescriptorSet indexes descriptors by operation id.
type DescriptorSet map[string]Descriptor

// IDs returns the operation ids in sorted order for deterministic listings.
func (s DescriptorSet) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Get looks up a descriptor by operation id.
func (s DescriptorSet) Get(operationID string) (Descriptor, bool) {
	d, ok := s[strings.TrimSpace(operationID)]
	return d, ok
}

// Parse extracts form-relevant operations from a raw OpenAPI document. Only
// write methods produce descriptors: forms exist to submit, and GET
// operations have no request body to govern. PUT and PATCH mark the
// descriptor as editing an existing resource.
func Parse(ctx context.Context, doc Document) (DescriptorSet, error) {
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	descriptors := make(DescriptorSet)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		collectOperation(descriptors, http.MethodPost, path, item.Post)
		collectOperation(descriptors, http.MethodPut, path, item.Put)
		collectOperation(descriptors, http.MethodPatch, path, item.Patch)
		collectOperation(descriptors, http.MethodDelete, path, item.Delete)
	}

	if len(descriptors) == 0 {
		return nil, errors.New("openapi: no form operations extracted")
	}
	return descriptors, nil
}

func collectOperation(target DescriptorSet, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	target[opID] = Descriptor{
		OperationID:    opID,
		Method:         method,
		Path:           path,
		Summary:        operation.Summary,
		RequiredFields: requiredFields(operation.RequestBody),
		IsEditing:      method == http.MethodPut || method == http.MethodPatch,
	}
}

func requiredFields(requestBody *openapi3.RequestBodyRef) []string {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			return schemaRequired(mt.Schema)
		}
	}
	for _, mt := range content {
		return schemaRequired(mt.Schema)
	}
	return nil
}

func schemaRequired(ref *openapi3.SchemaRef) []string {
	if ref == nil || ref.Value == nil || len(ref.Value.Required) == 0 {
		return nil
	}
	out := append([]string(nil), ref.Value.Required...)
	sort.Strings(out)
	return out
}
