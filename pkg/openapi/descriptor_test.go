package openapi_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/openapi"
)

const articleSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "articles", "version": "1.0.0"},
  "paths": {
    "/articles": {
      "get": {
        "operationId": "listArticles",
        "responses": {"200": {"description": "ok"}}
      },
      "post": {
        "operationId": "createArticle",
        "summary": "Create an article",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["title", "body"],
                "properties": {
                  "title": {"type": "string"},
                  "body": {"type": "string"},
                  "tags": {"type": "array", "items": {"type": "string"}}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    },
    "/articles/{id}": {
      "put": {
        "operationId": "updateArticle",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {"type": "object", "required": ["title"]}
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      },
      "delete": {
        "responses": {"204": {"description": "deleted"}}
      }
    }
  }
}`

func parseFixture(t *testing.T) openapi.DescriptorSet {
	t.Helper()
	doc, err := openapi.NewDocument(openapi.FromFS("schema.json"), []byte(articleSpec))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	set, err := openapi.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return set
}

func TestParseExtractsWriteOperations(t *testing.T) {
	set := parseFixture(t)

	wantIDs := []string{"createArticle", "delete:/articles/{id}", "updateArticle"}
	if diff := cmp.Diff(wantIDs, set.IDs()); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}

	create, ok := set.Get("createArticle")
	if !ok {
		t.Fatal("createArticle missing")
	}
	want := openapi.Descriptor{
		OperationID:    "createArticle",
		Method:         "POST",
		Path:           "/articles",
		Summary:        "Create an article",
		RequiredFields: []string{"body", "title"},
	}
	if diff := cmp.Diff(want, create); diff != "" {
		t.Fatalf("createArticle mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarksEditOperations(t *testing.T) {
	set := parseFixture(t)

	update, ok := set.Get("updateArticle")
	if !ok {
		t.Fatal("updateArticle missing")
	}
	if !update.IsEditing {
		t.Fatal("PUT operation must be marked editing")
	}

	create, _ := set.Get("createArticle")
	if create.IsEditing {
		t.Fatal("POST operation must not be marked editing")
	}
}

func TestParseSkipsReadOperations(t *testing.T) {
	set := parseFixture(t)
	if _, ok := set.Get("listArticles"); ok {
		t.Fatal("GET operations must not produce descriptors")
	}
}

func TestParseRejectsEmptyDocuments(t *testing.T) {
	doc, err := openapi.NewDocument(openapi.FromFS("empty.json"), []byte(`{"openapi":"3.0.0","info":{"title":"x","version":"1"},"paths":{}}`))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if _, err := openapi.Parse(context.Background(), doc); err == nil {
		t.Fatal("expected error for document without paths")
	}
}

func TestLoaderFromFS(t *testing.T) {
	files := fstest.MapFS{
		"specs/articles.json": &fstest.MapFile{Data: []byte(articleSpec)},
	}
	loader := openapi.NewLoader(openapi.WithFileSystem(files))

	doc, err := loader.Load(context.Background(), openapi.FromFS("specs/articles.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Location() != "specs/articles.json" {
		t.Fatalf("Location() = %q", doc.Location())
	}
	if len(doc.Raw()) == 0 {
		t.Fatal("empty payload")
	}
}

func TestLoaderRejectsHTTPWithoutClient(t *testing.T) {
	loader := openapi.NewLoader()
	_, err := loader.Load(context.Background(), openapi.FromURL("https://example.com/openapi.json"))
	if err == nil {
		t.Fatal("expected http support disabled error")
	}
}

func TestNewDocumentValidation(t *testing.T) {
	if _, err := openapi.NewDocument(nil, []byte("{}")); err == nil {
		t.Fatal("nil source must error")
	}
	if _, err := openapi.NewDocument(openapi.FromFS("x"), nil); err == nil {
		t.Fatal("empty payload must error")
	}
}
